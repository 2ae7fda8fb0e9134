package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/coolbeans/spatrem/pkg/config"
	"github.com/coolbeans/spatrem/pkg/importer"
	"github.com/coolbeans/spatrem/pkg/logging"
	"github.com/coolbeans/spatrem/pkg/metrics"
	"github.com/coolbeans/spatrem/pkg/tabular"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs after flags are parsed.
type app struct {
	config *config.Config
	logger *slog.Logger
	out    io.Writer
}

// inputs names the tables of one run. Either may be empty.
type inputs struct {
	translations string
	translators  string
}

func newApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	format, _ := cmd.Flags().GetString("format")
	logLevel, _ := cmd.Flags().GetString("log-level")
	metricsTextfile, _ := cmd.Flags().GetString("metrics-textfile")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if format != "" {
		cfg.Output.Format = format
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if metricsTextfile != "" {
		cfg.Metrics.Textfile = metricsTextfile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Log.Service = "spatrem"

	return &app{
		config: cfg,
		logger: logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr()),
		out:    cmd.OutOrStdout(),
	}, nil
}

// outputDir returns args[index], falling back to the configured directory.
func (a *app) outputDir(args []string, index int) (string, error) {
	if len(args) > index && args[index] != "" {
		return args[index], nil
	}
	if a.config.Output.Dir != "" {
		return a.config.Output.Dir, nil
	}
	return "", errors.New("no output directory given and output.dir is not configured")
}

// run compiles the given tables into a fresh session and exports it.
func (a *app) run(in inputs, outDir string) error {
	start := time.Now()
	recorder := metrics.New()
	session := importer.NewSession(a.config.ImportOptions(),
		importer.WithLogger(a.logger),
		importer.WithRecorder(recorder),
	)

	if in.translations != "" {
		if err := a.importTranslations(session, recorder, in.translations); err != nil {
			return err
		}
	}
	if in.translators != "" {
		if err := a.importTranslators(session, recorder, in.translators); err != nil {
			return err
		}
	}

	exporter, err := importer.NewExporter(session, a.config.Format())
	if err != nil {
		return err
	}
	paths, err := exporter.Export(outDir)
	if err != nil {
		if errors.Is(err, importer.ErrOutputDirNotFound) {
			return fmt.Errorf("%w (create it first)", err)
		}
		return err
	}

	if textfile := a.config.Metrics.Textfile; textfile != "" {
		if err := recorder.WriteTextfile(textfile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	a.printSummary(session.Stats(), paths, time.Since(start))
	return nil
}

func (a *app) readOptions() tabular.Options {
	options := a.config.ReadOptions()
	options.Logger = a.logger
	return options
}

func (a *app) importTranslations(session *importer.Session, recorder *metrics.Metrics, path string) error {
	result, err := tabular.ReadTranslations(path, a.readOptions())
	if err != nil {
		return fmt.Errorf("failed to read translations: %w", err)
	}
	recorder.RowsRejected(importer.TableTranslations, len(result.Rejected))

	rejected := len(result.Rejected)
	for i, record := range result.Records {
		if err := session.ProcessTranslation(record); err != nil {
			if a.config.ReadOptions().Policy == tabular.RowsAbort {
				return fmt.Errorf("%s: record %d: %w", path, i+1, err)
			}
			a.logger.Warn("skipping record", "file", path, "record", i+1, "error", err)
			recorder.RowsRejected(importer.TableTranslations, 1)
			rejected++
		}
	}

	a.logger.Info("processed table", "table", importer.TableTranslations, "file", path,
		"records", len(result.Records), "rejected", rejected)
	return nil
}

func (a *app) importTranslators(session *importer.Session, recorder *metrics.Metrics, path string) error {
	result, err := tabular.ReadTranslators(path, a.readOptions())
	if err != nil {
		return fmt.Errorf("failed to read translators: %w", err)
	}
	recorder.RowsRejected(importer.TableTranslators, len(result.Rejected))

	session.ProcessTranslators(result.Records)

	a.logger.Info("processed table", "table", importer.TableTranslators, "file", path,
		"records", len(result.Records), "rejected", len(result.Rejected))
	return nil
}

func (a *app) printSummary(stats importer.Stats, paths []string, elapsed time.Duration) {
	fmt.Fprintf(a.out, "Wrote %d partitions in %s\n", len(paths), elapsed.Round(time.Millisecond))
	for _, path := range paths {
		fmt.Fprintf(a.out, "  - %s\n", path)
	}

	fmt.Fprintln(a.out, "\nEntities:")
	for _, name := range importer.PartitionNames() {
		fmt.Fprintf(a.out, "  %-14s %d\n", name, stats.Entities[name])
	}

	fmt.Fprintln(a.out, "\nRows:")
	fmt.Fprintf(a.out, "  translations   %d\n", stats.TranslationRows)
	fmt.Fprintf(a.out, "  translators    %d\n", stats.TranslatorRows)
	if stats.UnknownTranslators > 0 {
		fmt.Fprintf(a.out, "  unknown translators: %d\n", stats.UnknownTranslators)
	}
	if stats.SkippedUntranslated > 0 {
		fmt.Fprintf(a.out, "  skipped untranslated: %d\n", stats.SkippedUntranslated)
	}
}

func (a *app) printReports(reports []importer.PartitionReport) {
	for _, report := range reports {
		fmt.Fprintf(a.out, "%s: %d triples, %d subjects\n", report.Name, report.Triples, report.Subjects)
		for _, class := range report.SortedClasses() {
			fmt.Fprintf(a.out, "  %-60s %d\n", class, report.Classes[class])
		}
	}
}

func parseDebounce(value string) (time.Duration, error) {
	delay, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --debounce %q: %w", value, err)
	}
	if delay <= 0 {
		return 0, fmt.Errorf("invalid --debounce %q: must be positive", value)
	}
	return delay, nil
}
