package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/card-fusion/internal/config"
	"github.com/ironsheep/card-fusion/internal/fusion"
	"github.com/ironsheep/card-fusion/internal/logging"
	"github.com/ironsheep/card-fusion/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	batchUsage  = "card-fusion [options] -batch <batchDir> <resultsDir> <normalMap | overlay> <defectName>"
	singleUsage = "card-fusion [options] <imageDir> <resultsDir> <normalMap | overlay>"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code. User-facing
// lines go to stdout; logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Handle --version and --help before flag parsing
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "card-fusion %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		}
	}

	fs := flag.NewFlagSet("card-fusion", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stdout) }

	batch := fs.Bool("batch", false, "process a flat directory of <name>_<direction>.HEIC files")
	configPath := fs.String("config", "", "YAML configuration file")
	blue := fs.Int("blue", 0, "blue channel fill value (0-255)")
	workers := fs.Int("workers", 1, "cards fused concurrently in batch mode")
	engine := fs.String("engine", "native", "fusion engine: native or opencv")
	resize := fs.String("resize", "", "scale composites to <W>x<H>")
	report := fs.String("report", "", "write a JSON run report to this file")
	logLevel := fs.String("log-level", "error", "log level: error, warn, info or debug")
	human := fs.Bool("human", false, "human-readable logs on stderr")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	positional := fs.Args()
	if fs.NArg()+boolToInt(*batch) < 3 {
		printUsage(stdout)
		return 1
	}
	if *batch && fs.NArg() != 4 {
		fmt.Fprintf(stdout, "Usage: %s\n", batchUsage)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "card-fusion: %v\n", err)
		return 1
	}
	// Options given on the command line override every other source.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "blue":
			cfg.BlueValue = *blue
		case "workers":
			cfg.Workers = *workers
		case "engine":
			cfg.Engine = *engine
		case "resize":
			cfg.Resize = *resize
		case "report":
			cfg.Report = *report
		case "log-level":
			cfg.LogLevel = *logLevel
		case "human":
			cfg.HumanLogs = *human
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "card-fusion: %v\n", err)
		return 1
	}

	log, err := logging.New(cfg.LogLevel, cfg.HumanLogs, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "card-fusion: %v\n", err)
		return 1
	}

	modeArg := positional[2]
	mode, err := fusion.ParseMode(modeArg)
	if err != nil {
		fmt.Fprintf(stdout, "Unknown mode %q\n", modeArg)
		printUsage(stdout)
		return 1
	}

	eng, err := fusion.NewEngine(cfg.Engine)
	if err != nil {
		fmt.Fprintf(stderr, "card-fusion: %v\n", err)
		return 1
	}
	size, _ := config.ParseResize(cfg.Resize)

	p := pipeline.New(mode)
	p.Engine = eng
	p.Options.BlueValue = uint8(cfg.BlueValue)
	p.Workers = cfg.Workers
	p.Resize = size
	p.Log = log
	p.Out = stdout

	log.Debug().
		Str("version", Version).
		Str("engine", eng.Name()).
		Str("mode", string(mode)).
		Bool("batch", *batch).
		Msg("starting")

	var runReport *pipeline.RunReport
	code := 0
	if *batch {
		runReport, err = p.RunBatch(ctx, positional[0], positional[1], positional[3])
		if err != nil {
			log.Error().Err(err).Msg("batch failed")
			fmt.Fprintf(stdout, "Batch failed: %v\n", err)
			code = 1
		}
	} else {
		runReport, err = p.RunSingle(positional[0], positional[1])
		if err != nil {
			log.Error().Err(err).Msg("single run failed")
			fmt.Fprintf(stdout, "Failed to process image directory: %v\n", err)
			code = 1
		}
	}

	if cfg.Report != "" && runReport != nil {
		if err := pipeline.WriteReport(cfg.Report, runReport); err != nil {
			log.Error().Err(err).Str("report", cfg.Report).Msg("report not written")
			fmt.Fprintf(stderr, "card-fusion: %v\n", err)
			code = 1
		}
	}

	return code
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  Batch Mode:  %s\n", batchUsage)
	fmt.Fprintf(w, "  Single Mode: %s\n", singleUsage)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "card-fusion - fuse four directionally lit card photographs into one RGB composite")
	fmt.Fprintln(w)
	printUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options (before the positional arguments):")
	fmt.Fprintln(w, "  -config <file>    YAML configuration file")
	fmt.Fprintln(w, "  -blue <0-255>     Blue channel fill value (default 0)")
	fmt.Fprintln(w, "  -workers <n>      Cards fused concurrently in batch mode (default 1)")
	fmt.Fprintln(w, "  -engine <name>    native or opencv (default native)")
	fmt.Fprintln(w, "  -resize <W>x<H>   Scale composites before writing")
	fmt.Fprintln(w, "  -report <file>    Write a JSON run report")
	fmt.Fprintln(w, "  -log-level <lvl>  error, warn, info or debug (default error)")
	fmt.Fprintln(w, "  -human            Human-readable logs on stderr")
	fmt.Fprintln(w, "  --version, -v     Print version information")
	fmt.Fprintln(w, "  --help, -h        Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from ./.env):")
	fmt.Fprintln(w, "  CARD_FUSION_LOG_LEVEL, CARD_FUSION_HUMAN_LOGS, CARD_FUSION_BLUE_VALUE,")
	fmt.Fprintln(w, "  CARD_FUSION_WORKERS, CARD_FUSION_ENGINE, CARD_FUSION_RESIZE, CARD_FUSION_REPORT")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
