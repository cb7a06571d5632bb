package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aretw0/keyloom/internal/platform"
	"github.com/aretw0/keyloom/pkg/core"
)

var (
	verbose    bool
	configFile string
	files      []string

	settings  platform.Settings
	logCloser io.Closer
)

// boundFlags maps configuration keys to the persistent flags overriding them.
var boundFlags = map[string]string{
	"indent":     "indent",
	"strict":     "strict",
	"versioning": "versioning",
	"read_only":  "read-only",
	"no_color":   "no-color",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "keyloom",
	Short: "Edit key-aligned key-value documents (e.g. locale files) as one table",
	Long: `keyloom loads a family of flat JSON, YAML or TOML documents that share a key space
and keeps them aligned: a key is added to all of them at once, deleted from all of them,
and searched across all of them (keys first, values second).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		root, err := platform.FindRoot(cwd)
		if err != nil {
			root = cwd
		}

		v := platform.NewViper()
		for key, flag := range boundFlags {
			if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
				return err
			}
		}
		if err := platform.ReadConfig(v, root, configFile); err != nil {
			return err
		}
		settings, err = platform.LoadSettings(v, root)
		if err != nil {
			return err
		}

		setupLogger()
		if settings.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		slog.Debug("configuration resolved", "root", settings.Root, "config", v.ConfigFileUsed(), "files", len(settings.Files))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

// setupLogger installs the default slog logger: stderr, or a rotating file when configured.
func setupLogger() {
	level := settings.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if settings.Log.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   settings.Log.File,
			MaxSize:    settings.Log.MaxSizeMB,
			MaxBackups: settings.Log.MaxBackups,
			MaxAge:     settings.Log.MaxAgeDays,
		}
		out = rotating
		logCloser = rotating
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, opts)))
}

// openEngine builds the engine and loads the documents selected by --file
// or by the files list of the configuration.
func openEngine(ctx context.Context) (*core.SyncEngine, error) {
	engine, err := platform.New(settings.Options(slog.Default())...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyloom: %w", err)
	}

	patterns := files
	if len(patterns) == 0 {
		patterns = settings.Patterns()
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no documents to load: pass --file or list files in %s.yaml", platform.ConfigName)
	}

	docs, err := platform.LoadAll(ctx, engine, patterns...)
	if err != nil {
		if len(docs) == 0 {
			return nil, err
		}
		// Partial loads are usable; the failures are still reported.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents matched %v", patterns)
	}
	return engine, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&configFile, "config", "", "Config file (default is .keyloom.yaml in the project root)")
	flags.StringSliceVarP(&files, "file", "f", nil, "Document paths or globs (overrides the config files list)")
	flags.Int("indent", 4, "Spaces used when writing documents")
	flags.Bool("strict", true, "Keep JSON numbers byte-exact")
	flags.Bool("versioning", false, "Record each save as a git commit")
	flags.Bool("read-only", false, "Refuse to write documents")
	flags.Bool("no-color", false, "Disable colored output")
}
