package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	lcadapter "github.com/aretw0/keyloom/pkg/adapters/lifecycle"
	"github.com/aretw0/keyloom/pkg/core"
)

var watchQuery string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the documents and refresh when they change on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := openEngine(ctx)
		if err != nil {
			return err
		}
		set := engine.Documents()

		events, err := set.Watch(ctx)
		if err != nil {
			return err
		}
		source := lcadapter.NewSource(events, set.All())
		if err := source.Start(ctx); err != nil {
			return err
		}

		draw := func() error {
			return writeView(os.Stdout, set.Names(), engine.Search(watchQuery), false)
		}
		if err := draw(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, faintStyle.Render("Watching for changes. Press Ctrl+C to stop."))

		for e := range source.Events() {
			event, ok := e.(lcadapter.DocumentEvent)
			if !ok {
				continue
			}
			switch event.Type {
			case core.EventDelete:
				slog.Warn("document removed from disk", "document", event.Document, "origin", event.Origin)
				continue
			case core.EventModify:
				if _, err := set.Load(ctx, event.Origin); err != nil {
					slog.Error("failed to reload document", "document", event.Document, "error", err)
					continue
				}
				slog.Info("document reloaded", "document", event.Document)
			}
			if err := draw(); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchQuery, "query", "q", "", "Only show rows matching this search")
}
