// Command stepflow runs a small demonstration work item through the
// execution supervisor and logger pipeline: a step tree with dedup, an
// optional part, a dispensable part, and an appeased error region. It is
// the reference host wiring for the module: print sink plus optional file
// and HTTP sinks behind a background logger, a blocking crash file, and an
// exit code derived from the worst severity.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/stepflow/runtime/config"
	"github.com/stepflow/runtime/execution"
	"github.com/stepflow/runtime/logger"
	"github.com/stepflow/runtime/observability"
	"github.com/stepflow/runtime/severity"
)

// stringSet collects repeated occurrences of a flag into a slice.
type stringSet []string

func (s *stringSet) String() string { return strings.Join(*s, ",") }

func (s *stringSet) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var (
		appName   = flag.String("app", "stepflow-demo", "Application name stamped on every event")
		logFile   = flag.String("log-file", "", "Append human-readable log lines to this file")
		crashFile = flag.String("crash-file", "", "Write crash-info events synchronously to this file")
		postURL   = flag.String("post-url", "", "POST every event as JSON to this URL")
		debug     = flag.Bool("debug", false, "Log debug skip events for deduplicated steps")
		verbose   = flag.Bool("verbose", false, "Enable verbose pipeline diagnostics to stderr")
		options   stringSet
		dispensed stringSet
	)
	flag.Var(&options, "option", "Activate an optional part by name (repeatable)")
	flag.Var(&dispensed, "dispense", "Switch off a dispensable part by name (repeatable)")
	flag.Parse()

	diagLevel := slog.LevelInfo
	if *verbose {
		diagLevel = slog.LevelDebug
	}
	diag := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: diagLevel}))
	logger.SetDiagnosticsObserver(observability.NewSlogObserver(diag))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mainLogger, crashLogger, err := buildPipeline(*logFile, *postURL, *crashFile)
	if err != nil {
		log.Fatalf("Failed to build logger pipeline: %v", err)
	}

	cfg := config.DefaultExecutionConfig(*appName)
	cfg.Debug = *debug

	opts := []execution.Option{
		execution.WithActivatedOptions(options...),
		execution.WithDispensedWith(dispensed...),
	}
	if crashLogger != nil {
		opts = append(opts, execution.WithCrashLogger(crashLogger))
	}

	exec := execution.New(cfg, mainLogger, opts...)

	runDemoWorkItem(ctx, exec)

	worst := exec.WorstSeverity()
	if err := exec.CloseLoggers(); err != nil {
		log.Fatalf("Failed to close loggers: %v", err)
	}

	fmt.Printf("Worst severity: %s\n", worst)
	if worst >= severity.Fatal {
		os.Exit(1)
	}
}

// buildPipeline assembles the main sink (print, plus file and HTTP sinks if
// requested, all behind one background logger) and an optional synchronous
// crash sink backed by a blocking, synced file.
func buildPipeline(logFile, postURL, crashFile string) (mainLogger, crashLogger logger.Logger, err error) {
	var children []logger.Logger
	children = append(children, logger.NewPrintLogger(logger.DefaultPrintConfig()))

	if logFile != "" {
		fileCfg := logger.DefaultFileConfig(logFile)
		fileSink, err := logger.NewFileLogger(fileCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		children = append(children, fileSink)
	}

	if postURL != "" {
		children = append(children, logger.NewHTTPSink(postURL, nil))
	}

	multi := logger.NewMultiLogger(children...)
	mainLogger = logger.NewConcurrentLogger(logger.DefaultConcurrentConfig(), multi.Log, multi.Close)

	if crashFile != "" {
		crashCfg := logger.DefaultFileConfig(crashFile)
		crashCfg.Sync = true
		crashCfg.Deduplicate = false
		crashSink, err := logger.NewFileLogger(crashCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open crash file: %w", err)
		}
		crashLogger = logger.NewCrashLogger(crashSink.Log, crashSink.Close)
	}

	return mainLogger, crashLogger, nil
}
