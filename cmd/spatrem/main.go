package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coolbeans/spatrem/pkg/importer"
	"github.com/coolbeans/spatrem/pkg/validate"
	"github.com/coolbeans/spatrem/pkg/watch"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spatrem",
		Short: "Spaces of Translation graph compiler",
		Long: `Spatrem turns the Spaces of Translation tables into a linked-data graph.

It reads the translations table (one row per translated text in a journal
issue) and the translators table (biographical data), and writes nine
graph partitions: types, journals, issues, translators, authors,
languages, names, translations and originals.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringP("format", "f", "", "Output format: turtle, ntriples, jsonld, rdfxml")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("metrics-textfile", "", "Write run metrics to this Prometheus textfile")

	rootCmd.AddCommand(compileCmd())
	rootCmd.AddCommand(translationsCmd())
	rootCmd.AddCommand(translatorsCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(watchCmd())

	return rootCmd
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <translators-file> <translations-file> [output-dir]",
		Short: "Compile both tables into one graph",
		Long: `Compile the translations table and then the translators table into one
graph and export its partitions.

The output directory must exist. When omitted, output.dir from the
configuration is used.

Example:
  spatrem compile translators.csv translations.csv out/
  spatrem compile --format ntriples translators.xlsx translations.xlsx out/`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			outDir, err := a.outputDir(args, 2)
			if err != nil {
				return err
			}
			return a.run(inputs{translators: args[0], translations: args[1]}, outDir)
		},
	}
}

func translationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translations <translations-file> [output-dir]",
		Short: "Compile the translations table alone",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			outDir, err := a.outputDir(args, 1)
			if err != nil {
				return err
			}
			return a.run(inputs{translations: args[0]}, outDir)
		},
	}
}

func translatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translators <translators-file> [output-dir]",
		Short: "Compile the translators table alone",
		Long: `Compile the translators table alone.

Biographical rows only enrich translators named by a translations table,
so on its own every row is reported as unknown and the partitions hold
just the role types. Use compile to combine both tables.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			outDir, err := a.outputDir(args, 1)
			if err != nil {
				return err
			}
			return a.run(inputs{translators: args[0]}, outDir)
		},
	}
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [output-dir]",
		Short: "Re-parse exported partitions and check the graph",
		Long: `Re-parse every exported partition, print its triple, subject and class
counts, and run the consistency gates over the union of all partitions.

Gates: typing, inverses, references, identity.
Only turtle and ntriples output can be verified.

Example:
  spatrem verify out/
  spatrem verify --gate references --threshold references.references_resolved=0.99 out/
  spatrem verify --json out/ > report.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skipGates, _ := cmd.Flags().GetStringSlice("skip-gates")
			strictMode, _ := cmd.Flags().GetBool("strict")
			failOnWarn, _ := cmd.Flags().GetBool("fail-on-warn")
			thresholdFlags, _ := cmd.Flags().GetStringSlice("threshold")
			gateName, _ := cmd.Flags().GetString("gate")
			asJSON, _ := cmd.Flags().GetBool("json")

			thresholds, err := validate.ParseThresholds(thresholdFlags)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			dir, err := a.outputDir(args, 0)
			if err != nil {
				return err
			}

			reports, err := importer.Verify(dir, a.config.Format())
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			gateConfig := &validate.ValidationConfig{
				Thresholds: thresholds,
				SkipGates:  skipGates,
				StrictMode: strictMode,
				FailOnWarn: failOnWarn,
			}
			union := importer.Union(reports)

			var gateReport *validate.GateReport
			if gateName != "" {
				gateReport, err = validate.CheckGate(union, gateConfig, gateName)
				if err != nil {
					return err
				}
			} else {
				gateReport = validate.Check(union, gateConfig)
			}

			if asJSON {
				data, err := gateReport.ToJSON()
				if err != nil {
					return fmt.Errorf("failed to encode gate report: %w", err)
				}
				fmt.Fprintln(a.out, string(data))
			} else {
				a.printReports(reports)
				fmt.Fprintf(a.out, "\n%s", gateReport.String())
			}

			if !gateReport.OverallPass {
				return fmt.Errorf("graph check failed: %s", validate.Summary(gateReport))
			}
			return nil
		},
	}

	cmd.Flags().StringSlice("skip-gates", []string{}, "Gates to skip (typing, inverses, references, identity)")
	cmd.Flags().Bool("strict", false, "Stop at the first failing gate")
	cmd.Flags().Bool("fail-on-warn", false, "Fail when a gate metric is close to its threshold")
	cmd.Flags().StringSlice("threshold", []string{}, "Override a gate threshold as gate.metric=value")
	cmd.Flags().String("gate", "", "Run only the named gate")
	cmd.Flags().Bool("json", false, "Print the gate report as JSON")
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <translators-file> <translations-file> [output-dir]",
		Short: "Recompile whenever an input table changes",
		Long: `Compile once, then recompile every time one of the input tables is
saved. Stop with Ctrl-C.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			outDir, err := a.outputDir(args, 2)
			if err != nil {
				return err
			}
			debounce, _ := cmd.Flags().GetString("debounce")
			delay, err := parseDebounce(debounce)
			if err != nil {
				return err
			}

			in := inputs{translators: args[0], translations: args[1]}
			if err := a.run(in, outDir); err != nil {
				return err
			}

			watcher, err := watch.New([]string{in.translations, in.translators},
				func(ctx context.Context, changed []string) error {
					return a.run(in, outDir)
				},
				watch.WithDebounce(delay),
				watch.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watcher.Run(ctx)
		},
	}

	cmd.Flags().String("debounce", watch.DefaultDebounce.String(), "Quiet period before recompiling")
	return cmd
}
