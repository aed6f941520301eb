// Package main provides the CLI entry point for xlcompare.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/xlcompare-go/internal/config"
	"github.com/ukaji3/xlcompare-go/internal/server"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/loader"
	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/output"
)

var (
	outputPath string
	asJSON     bool
	pretty     bool
	format     string
	logLevel   string
	cellRange  string
	targetCell string
	sheetIndex int
	listenAddr string

	cfg *config.Config
	log *logrus.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlcompare",
		Short: "Compare spreadsheet formats and verify cell sums",
		Long: `xlcompare compares a reference spreadsheet with a test spreadsheet
(columns, data types, cell storage, numeric precision, nulls, row counts)
and verifies that a cell range sums to a target cell.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Container format: auto, xls, xlsx (default from XLCOMPARE_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default from XLCOMPARE_LOG_LEVEL)")

	compareCmd := &cobra.Command{
		Use:   "compare [reference] [test]",
		Short: "Compare a test spreadsheet against a reference spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}
	compareCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	compareCmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of text")
	compareCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	verifyCmd := &cobra.Command{
		Use:   "verify-sum [input.xlsx]",
		Short: "Verify that a cell range sums to a target cell",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerifySum,
	}
	verifyCmd.Flags().StringVar(&cellRange, "range", "A1:A10", "Cell range to sum, e.g. A1:A10")
	verifyCmd.Flags().StringVar(&targetCell, "target", "B1", "Target cell, e.g. B1")
	verifyCmd.Flags().IntVar(&sheetIndex, "sheet", 0, "Zero-based sheet index")
	verifyCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	verifyCmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of text")
	verifyCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the comparison API over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (default from XLCOMPARE_ADDR)")

	rootCmd.AddCommand(compareCmd, verifyCmd, serveCmd)
	return rootCmd
}

// setup loads configuration and applies flag overrides.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	if format != "" {
		f, err := loader.ParseFormat(format)
		if err != nil {
			return err
		}
		cfg.Format = f
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if listenAddr != "" {
		cfg.Addr = listenAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err = cfg.NewLogger()
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())
	return nil
}

func options() xlcompare.Options {
	return xlcompare.Options{
		Format:     cfg.Format,
		SheetIndex: sheetIndex,
		Logger:     log,
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	report := xlcompare.Compare(args[0], args[1], options())

	err := writeOutput(cmd.OutOrStdout(), func(w io.Writer) error {
		if asJSON {
			data, err := output.ReportToJSON(report, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}
		return output.WriteReport(w, report)
	})
	if err != nil {
		return err
	}

	if !report.Passed() {
		return fmt.Errorf("%d of %d checks failed", report.Total()-report.PassedCount(), report.Total())
	}
	return nil
}

func runVerifySum(cmd *cobra.Command, args []string) error {
	result := xlcompare.VerifySum(args[0], cellRange, targetCell, options())

	err := writeOutput(cmd.OutOrStdout(), func(w io.Writer) error {
		if asJSON {
			data, err := output.SumToJSON(result, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}
		return output.WriteSum(w, result)
	})
	if err != nil {
		return err
	}

	if result.Error != "" {
		return fmt.Errorf("verification failed: %s", result.Error)
	}
	if !result.Passed {
		return fmt.Errorf("sum %.10g does not match target %s", result.Sum, targetCell)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	return server.New(cfg, log).ListenAndServe()
}

// writeOutput writes to --output when set, otherwise to stdout.
func writeOutput(stdout io.Writer, write func(io.Writer) error) error {
	if outputPath == "" {
		return write(stdout)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
