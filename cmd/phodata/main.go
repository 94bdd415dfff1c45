package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"phodata/internal/app"
	"phodata/internal/config"
	"phodata/internal/domain"
	appErrors "phodata/internal/errors"
	"phodata/internal/infra/csvout"
	"phodata/internal/infra/exif"
	"phodata/internal/infra/fs"
	"phodata/internal/infra/sqlstore"
	"phodata/internal/logging"
	"phodata/internal/presentation"
	"phodata/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		exitWithError(err)
	}
}

func newRootCmd() *cobra.Command {
	var opts config.Options

	cmd := &cobra.Command{
		Use:   "phodata <root>",
		Short: "Export photo EXIF metadata to CSV, SQLite or DuckDB",
		Long: `phodata walks a directory tree, reads EXIF metadata from every photo
with a matching extension and writes one row per photo into a CSV file,
a SQLite database or a DuckDB database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Root = args[0]
			cfg, err := config.Resolve(opts, config.StandardDefaults())
			if err != nil {
				return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.TUI {
				return runTUI(ctx, cfg)
			}
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Format, "format", "f", "", "output format: csv, sqlite or duckdb")
	flags.StringVarP(&opts.Output, "output", "o", "", "output file (default photos.csv, photos.db or photos.duckdb)")
	flags.StringSliceVarP(&opts.Extensions, "extensions", "e", nil, "file extensions to include (default jpg)")
	flags.StringVar(&opts.OnError, "on-error", "", "what to do with unreadable files: abort or skip (default abort)")
	flags.StringVar(&opts.ConfigFile, "config", "", "path to a YAML config file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&opts.TUI, "tui", false, "show an interactive progress view")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logging.New(os.Stderr, cfg.Verbose)

	exporter := app.Exporter{
		FS:     fs.OSFS{},
		Exif:   exif.Reader{},
		Logger: logger,
		Policy: cfg.Policy,
	}
	summary, err := exporter.Export(ctx, cfg.Root, cfg.Extensions, sinkOpener(cfg))
	if err != nil {
		return err
	}
	summary.Format = cfg.Format

	printer := presentation.Printer{
		Writer:  os.Stdout,
		Verbose: cfg.Verbose,
	}
	printer.PrintSummary(summary)
	return nil
}

func runTUI(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the alternate screen; the summary carries skips.
	logger := logging.New(io.Discard, false)

	model := tui.NewModel(tui.Config{
		Root:    cfg.Root,
		Output:  cfg.Output,
		Format:  cfg.Format,
		Verbose: cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		program.Send(exportWithProgress(ctx, cfg, logger, program))
	}()

	final, runErr := program.Run()

	// Make sure an interrupted export has discarded its temporary file.
	cancel()
	<-finished

	if m, ok := final.(tui.Model); ok {
		switch {
		case m.Phase == tui.PhaseError:
			return m.Err
		case m.Phase == tui.PhaseDone:
			presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}.PrintSummary(m.Summary)
			return nil
		case m.Quitting:
			return appErrors.Wrap(appErrors.Internal, "export", cfg.Root, context.Canceled)
		}
	}
	if runErr != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", runErr)
	}
	return nil
}

// exportWithProgress runs the export and reports progress to the program.
// The returned message is the final state.
func exportWithProgress(ctx context.Context, cfg config.Config, logger logging.Logger, program *tea.Program) tea.Msg {
	filesystem := fs.OSFS{}

	total, err := app.Discoverer{FS: filesystem, Logger: logger}.Count(ctx, cfg.Root, cfg.Extensions)
	if err != nil {
		return tui.ErrorMsg{Err: err}
	}
	program.Send(tui.CountedMsg{Total: total})

	exporter := app.Exporter{
		FS:     filesystem,
		Exif:   exif.Reader{},
		Logger: logger,
		Policy: cfg.Policy,
		OnProgress: func(done int, path string) {
			program.Send(tui.ExportProgressMsg{Done: done, Total: total, File: filepath.Base(path)})
		},
	}
	summary, err := exporter.Export(ctx, cfg.Root, cfg.Extensions, sinkOpener(cfg))
	if err != nil {
		return tui.ErrorMsg{Err: err}
	}
	summary.Format = cfg.Format
	return tui.ExportDoneMsg{Summary: summary}
}

// sinkOpener creates the writer for the configured format. Nothing is visible
// at the destination until the sink commits.
func sinkOpener(cfg config.Config) app.SinkOpener {
	return func(ctx context.Context) (app.RecordSink, error) {
		return openSink(ctx, cfg)
	}
}

func openSink(ctx context.Context, cfg config.Config) (app.RecordSink, error) {
	if cfg.Format == domain.FormatCSV {
		w, err := csvout.Create(cfg.Output)
		if err != nil {
			return nil, appErrors.Wrap(appErrors.IOFailure, "create", cfg.Output, err)
		}
		return w, nil
	}

	dialect, err := sqlstore.DialectFor(cfg.Format)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.InvalidConfig, "format", "", err)
	}
	store, err := sqlstore.Create(ctx, dialect, cfg.Output)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.IOFailure, "create", cfg.Output, err)
	}
	return store, nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
