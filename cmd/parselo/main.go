// Package main provides the CLI entry point for parselo-go.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/parselo-go/pkg/parselo"
	"github.com/ukaji3/parselo-go/pkg/parselo/config"
	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
	"github.com/ukaji3/parselo-go/pkg/parselo/output"
)

var (
	outputPath string
	pretty     bool
	verbose    bool
	password   string

	sheetName  string
	rangeRef   string
	kindName   string
	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "parselo",
		Short: "Decode regions of Excel files",
		Long: `parselo-go reads lists, matrices and named ranges out of xlsx
workbooks and outputs JSON.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Password for encrypted workbooks")

	sheetsCmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List sheets with their populated rows and table candidates",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}

	arrayCmd := &cobra.Command{
		Use:   "array [input.xlsx]",
		Short: "Decode a single-row or single-column range",
		Args:  cobra.ExactArgs(1),
		RunE:  regionRunner(config.ShapeList),
	}
	matrixCmd := &cobra.Command{
		Use:   "matrix [input.xlsx]",
		Short: "Decode a rectangular range",
		Args:  cobra.ExactArgs(1),
		RunE:  regionRunner(config.ShapeMatrix),
	}
	for _, cmd := range []*cobra.Command{arrayCmd, matrixCmd} {
		cmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet name")
		cmd.Flags().StringVar(&rangeRef, "range", "", "A1 range, e.g. B3:E5")
		cmd.Flags().StringVar(&kindName, "kind", "text", "Value kind: text, int, float, date, bool, decimal")
		_ = cmd.MarkFlagRequired("sheet")
		_ = cmd.MarkFlagRequired("range")
	}

	runCmd := &cobra.Command{
		Use:   "run [input.xlsx]",
		Short: "Run the jobs of a YAML job file",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobs,
	}
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Job file path")
	_ = runCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(sheetsCmd, arrayCmd, matrixCmd, runCmd)
	return rootCmd
}

func openWorkbook(inputPath, filePassword string) (*parselo.Workbook, error) {
	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", inputPath)
	}

	logger := slog.New(slog.DiscardHandler)
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if password != "" {
		filePassword = password
	}

	return parselo.Open(inputPath,
		parselo.WithLogger(logger),
		parselo.WithPassword(filePassword),
		// JSON has no NaN.
		parselo.WithDefault(convert.Float, 0.0),
	)
}

func runSheets(cmd *cobra.Command, args []string) error {
	wb, err := openWorkbook(args[0], "")
	if err != nil {
		return err
	}
	defer wb.Close()

	summary, err := wb.Summary()
	if err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}
	return write(summary)
}

func regionRunner(shape config.Shape) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		region, err := models.ParseRegion(rangeRef)
		if err != nil {
			return err
		}
		job := config.Job{Name: string(shape), Sheet: sheetName, Range: region, Kind: kindName, Shape: shape}
		if err := (&config.File{Jobs: []config.Job{job}}).Validate(); err != nil {
			return err
		}

		wb, err := openWorkbook(args[0], "")
		if err != nil {
			return err
		}
		defer wb.Close()

		result, err := config.RunJob(wb, job)
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		return write(result.Values)
	}
}

func runJobs(cmd *cobra.Command, args []string) error {
	file, err := config.Load(configPath)
	if err != nil {
		return err
	}

	wb, err := openWorkbook(args[0], file.Password)
	if err != nil {
		return err
	}
	defer wb.Close()

	results, err := config.Run(wb, file.Jobs)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return write(results)
}

func write(v any) error {
	if outputPath == "" {
		return output.WriteJSON(os.Stdout, v, pretty)
	}

	jsonData, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
