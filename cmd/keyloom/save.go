package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/keyloom/internal/platform"
	"github.com/aretw0/keyloom/pkg/core"
)

var (
	keepGoing    bool
	changeReason string
)

func addSaveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Try every document even if one fails to save")
	cmd.Flags().StringVarP(&changeReason, "message", "m", "", "Change reason (commit message when versioning)")
}

// save writes all documents back, as the "save all" of the editor.
func save(ctx context.Context, engine *core.SyncEngine, subject string) error {
	msg := platform.FormatChangeReason(platform.CommitTypeI18n, "", subject, "")
	if changeReason != "" {
		msg = platform.AppendTrailer(changeReason)
	}
	ctx = context.WithValue(ctx, core.ChangeReasonKey, msg)

	if err := platform.SaveAll(ctx, engine, keepGoing); err != nil {
		return fmt.Errorf("failed to save documents: %w", err)
	}
	return nil
}
