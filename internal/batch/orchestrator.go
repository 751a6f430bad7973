package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avask/scribe/internal/domain"
	"github.com/avask/scribe/internal/media"
	"github.com/avask/scribe/internal/transcription"
	"github.com/avask/scribe/pkg/logger"
)

// Submitter abstracts the transcription client for testability.
type Submitter interface {
	Submit(ctx context.Context, file media.MediaFile, req transcription.Request) (transcription.Result, error)
}

// TranscriptWriter abstracts the output writer for testability.
type TranscriptWriter interface {
	Write(file media.MediaFile, transcript, ext string) (string, error)
}

// Options configures one batch run.
type Options struct {
	Language            string
	Diarize             bool
	OutputExt           string
	Workers             int           // 1 = sequential baseline
	RetryMaxAttempts    int           // total attempts per file, minimum 1
	RetryInitialBackoff time.Duration // doubled after each retried attempt
}

// Orchestrator drives discovery and per-file processing, isolating
// per-file failures and aggregating a run summary.
type Orchestrator struct {
	client Submitter
	writer TranscriptWriter
	opts   Options
	logger *logger.Logger
}

// New creates a batch orchestrator.
func New(client Submitter, writer TranscriptWriter, opts Options, logger *logger.Logger) *Orchestrator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.RetryMaxAttempts < 1 {
		opts.RetryMaxAttempts = 1
	}
	if opts.RetryInitialBackoff <= 0 {
		opts.RetryInitialBackoff = time.Second
	}
	if opts.OutputExt == "" {
		opts.OutputExt = "txt"
	}

	return &Orchestrator{
		client: client,
		writer: writer,
		opts:   opts,
		logger: logger.Named("batch"),
	}
}

type job struct {
	index int
	file  media.MediaFile
}

// Run discovers media files in dir and processes each one. Per-file
// failures are recorded and the batch continues; an authentication
// failure aborts the whole run since every remaining file would fail
// identically. The returned error is non-nil only for fatal conditions.
func (o *Orchestrator) Run(ctx context.Context, dir string) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	log := o.logger.With(logger.String("run_id", summary.RunID))

	files, err := media.Discover(dir)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		return summary, domain.NewError(domain.KindNoSupportedFiles, dir, "no supported media files found", nil)
	}

	log.Info("Starting batch run",
		logger.Int("files", len(files)),
		logger.Int("workers", o.opts.Workers),
		logger.Bool("diarize", o.opts.Diarize),
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	jobs := make(chan job)
	workers := o.opts.Workers
	if workers > len(files) {
		workers = len(files)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				// The run may have aborted while this job sat queued.
				if runCtx.Err() != nil {
					continue
				}

				log.Info("Transcribing file",
					logger.Int("index", j.index+1),
					logger.Int("total", len(files)),
					logger.String("file", j.file.Name()),
				)

				start := time.Now()
				err := o.processFile(runCtx, log, j)

				mu.Lock()
				summary.Attempted++
				if err == nil {
					summary.Succeeded++
				} else {
					summary.Failures = append(summary.Failures, Failure{
						Path:    j.file.Path,
						Kind:    domain.KindOf(err),
						Message: err.Error(),
					})
					if domain.KindOf(err) == domain.KindAuthentication {
						summary.Fatal = true
						cancel()
					}
				}
				mu.Unlock()

				if err != nil {
					log.Warn("File failed",
						logger.String("file", j.file.Name()),
						logger.String("kind", domain.KindOf(err).String()),
						logger.Duration("duration", time.Since(start)),
						logger.Error(err),
					)
				} else {
					log.Info("File transcribed",
						logger.String("file", j.file.Name()),
						logger.Duration("duration", time.Since(start)),
					)
				}
			}
		}()
	}

feed:
	for i, f := range files {
		select {
		case <-runCtx.Done():
			break feed
		case jobs <- job{index: i, file: f}:
		}
	}
	close(jobs)
	wg.Wait()

	if summary.Fatal {
		return summary, domain.NewError(domain.KindAuthentication, "",
			"batch aborted: the transcription service rejected the API key", nil)
	}

	log.Info("Batch run complete",
		logger.Int("attempted", summary.Attempted),
		logger.Int("succeeded", summary.Succeeded),
		logger.Int("failed", summary.Failed()),
	)
	return summary, nil
}

// processFile runs submit, format, write for one file, retrying transient
// failures with exponential backoff. All other failure kinds get exactly
// one attempt.
func (o *Orchestrator) processFile(ctx context.Context, log *logger.Logger, j job) error {
	req := transcription.Request{
		Language: o.opts.Language,
		Diarize:  o.opts.Diarize,
	}

	var result transcription.Result
	var err error

	backoff := o.opts.RetryInitialBackoff
	for attempt := 1; ; attempt++ {
		result, err = o.client.Submit(ctx, j.file, req)
		if err == nil || !domain.Retryable(err) || attempt >= o.opts.RetryMaxAttempts {
			break
		}

		log.Warn("Retrying submission",
			logger.String("file", j.file.Name()),
			logger.Int("attempt", attempt),
			logger.Int("max_attempts", o.opts.RetryMaxAttempts),
			logger.Error(err),
		)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	if err != nil {
		return err
	}

	text := transcription.FormatTranscript(result)
	if _, err := o.writer.Write(j.file, text, o.opts.OutputExt); err != nil {
		return err
	}
	return nil
}
