// cmd/csvdedup/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mshammas/csvdeduplicator/pkg/audit"
	"github.com/mshammas/csvdeduplicator/pkg/config"
	"github.com/mshammas/csvdeduplicator/pkg/csvio"
	"github.com/mshammas/csvdeduplicator/pkg/dedup"
	"github.com/mshammas/csvdeduplicator/pkg/model"
	"github.com/mshammas/csvdeduplicator/pkg/selector"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is not an error
	_ = godotenv.Load()

	countFlag := flag.Int("c", 0, "count of columns to check (if not given, all columns are used unless -r specifies a subset)")
	rangeFlag := flag.String("r", "", "column specifier: with -c the first value is the starting column; alone, a hyphen-separated list (e.g. 3-5-8) of columns to check")
	listFlag := flag.Bool("q", false, "list the column headers with indexes and exit; all other options are ignored")
	outputFlag := flag.String("o", "", "output file path (default: input with _deduped suffix)")
	logFlag := flag.String("l", "", "duplicate log path (default: deduplicate_list)")
	reportFlag := flag.Bool("report", false, "print a metrics report after the run")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return 2
	}
	inputFile := flag.Arg(0)

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if _, err := os.Stat(inputFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error: Input file does not exist.")
		return dedup.ErrorCategoryInput.ExitCode()
	}

	// Header-listing mode ignores every other option
	if *listFlag {
		return listHeaders(inputFile)
	}

	spec := selector.ColumnSpec{}
	spec.StartOrList, err = selector.ParseStartOrList(*rangeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return dedup.ErrorCategorySpec.ExitCode()
	}
	if wasFlagSet("c") {
		count := *countFlag
		spec.Count = &count
	}

	ctx := context.Background()

	var sink dedup.AuditSink
	if cfg.Audit != nil {
		store, err := audit.NewStore(ctx, cfg.Audit, logger.Named("audit"))
		if err != nil {
			logger.Error("Failed to connect to audit store", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer store.Close()
		sink = store
	}

	duplicateLog := cfg.DuplicateLogPath
	if *logFlag != "" {
		duplicateLog = *logFlag
	}

	manager := dedup.NewManager(logger, sink)
	result, err := manager.Run(ctx, dedup.RunOptions{
		InputPath:    inputFile,
		OutputPath:   *outputFlag,
		DuplicateLog: duplicateLog,
		Spec:         spec,
	})
	if err != nil {
		category := dedup.CategorizeError(err)
		logger.Error("Dedup run failed",
			zap.String("category", category.String()),
			zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return category.ExitCode()
	}

	fmt.Printf("Deduplicated CSV file written to %s\n", result.OutputFile)
	fmt.Printf("Duplicate pairs (column1 values) have been written to '%s'.\n", result.DuplicateLog)

	if *reportFlag {
		fmt.Println(manager.GetMetrics().GenerateReport())
	}

	return 0
}

// listHeaders prints the header row with 1-indexed positions.
func listHeaders(inputFile string) int {
	header, err := csvio.ReadHeader(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return dedup.CategorizeError(err).ExitCode()
	}

	schema := model.NewTableSchema(header)
	fmt.Println("Column index : Header")
	for _, col := range schema.Columns {
		fmt.Printf("%d: %s\n", col.Position, col.Name)
	}
	return 0
}

// buildLogger constructs a zap logger per the configured level and format.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// Keep stdout free for the tool's own output
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}

// wasFlagSet reports whether a flag was given explicitly on the command
// line, distinguishing an absent -c from -c 0.
func wasFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: csvdedup [options] <csvfile>

Remove duplicate rows from a CSV based on specified column(s) values and
log duplicate pairs' column1 values in a two-column file.

Options:
`)
	flag.PrintDefaults()
}
