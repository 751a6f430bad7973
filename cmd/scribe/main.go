package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/avask/scribe/internal/batch"
	"github.com/avask/scribe/internal/config"
	"github.com/avask/scribe/internal/media"
	"github.com/avask/scribe/internal/output"
	"github.com/avask/scribe/internal/transcription"
	"github.com/avask/scribe/pkg/logger"
)

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <directory>\n\n", prog)
	fmt.Fprintf(os.Stderr, "Transcribe all audio/video files in a directory using a remote\ntranscription service, writing one text file next to each input.\n\n")
	fmt.Fprintf(os.Stderr, "Supported formats: %s\n\n", strings.Join(media.SupportedExtensions(), ", "))
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  %s /path/to/videos\n", prog)
	fmt.Fprintf(os.Stderr, "  %s -lang en /path/to/videos\n", prog)
	fmt.Fprintf(os.Stderr, "  %s -diarization -ext srt /path/to/videos\n", prog)
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "path to TOML settings file")
		apiKey      = flag.String("api-key", "", "API key (defaults to the "+config.EnvAPIKey+" env var or the settings file)")
		language    = flag.String("lang", "", "language code, e.g. 'en', 'es', 'fr' (auto-detected if empty)")
		diarization = flag.Bool("diarization", false, "enable speaker diarization")
		outputExt   = flag.String("ext", "", "output file extension (default: txt)")
		workers     = flag.Int("workers", 0, "number of files to process in parallel (default: 1)")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		return 1
	}
	dir := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Flags override settings file and environment. The diarization
	// override only applies when the flag was given explicitly, so
	// -diarization=false can switch off a file-enabled setting.
	overrides := config.Overrides{
		APIKey:    *apiKey,
		Language:  *language,
		OutputExt: *outputExt,
		Workers:   *workers,
		LogLevel:  *logLevel,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "diarization" {
			overrides.Diarize = diarization
		}
	})
	cfg.Apply(overrides)

	if cfg.APIKey == "" {
		fmt.Fprintf(os.Stderr, "Error: API key required. Set %s or use -api-key.\n", config.EnvAPIKey)
		return 1
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync()

	client := transcription.NewClient(transcription.Config{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		TimeoutSeconds: cfg.RequestTimeoutSeconds,
	}, log)
	writer := output.NewWriter(log)

	orchestrator := batch.New(client, writer, batch.Options{
		Language:            cfg.Language,
		Diarize:             cfg.Diarize,
		OutputExt:           cfg.OutputExt,
		Workers:             cfg.Workers,
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		RetryInitialBackoff: time.Duration(cfg.RetryInitialBackoffMs) * time.Millisecond,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := orchestrator.Run(ctx, dir)
	report(summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// report prints the user-facing run summary to stdout.
func report(summary batch.Summary) {
	if summary.Attempted == 0 && !summary.Fatal {
		return
	}

	fmt.Printf("Transcribed %d of %d file(s).\n", summary.Succeeded, summary.Attempted)
	if summary.Failed() > 0 {
		fmt.Println("Failed:")
		for _, f := range summary.Failures {
			fmt.Printf("  %s: %s\n", filepath.Base(f.Path), f.Message)
		}
	}
}
