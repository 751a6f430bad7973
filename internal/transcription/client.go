package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/avask/scribe/internal/domain"
	"github.com/avask/scribe/internal/media"
	"github.com/avask/scribe/pkg/logger"
)

// Config represents the configuration for the transcription client.
type Config struct {
	BaseURL        string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// Client submits media files to the remote transcription service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *logger.Logger
}

// NewClient creates a new transcription client. The timeout bounds the
// whole request, upload included, so one stuck file cannot hang a batch.
func NewClient(cfg Config, logger *logger.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: transport,
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		logger:  logger.Named("transcription"),
	}
}

// listenURL builds the submission URL with query-level options.
func (c *Client) listenURL(req Request) string {
	params := url.Values{}
	params.Set("punctuate", "true")
	params.Set("model", c.model)
	params.Set("smart_format", "true")
	params.Set("paragraphs", "true")

	if req.Language != "" {
		params.Set("language", req.Language)
	}
	if req.Diarize {
		params.Set("diarize", "true")
		params.Set("utterances", "true")
		params.Set("utt_split", "2.0")
	}

	return fmt.Sprintf("%s/v1/listen?%s", c.baseURL, params.Encode())
}

// Submit uploads one file's bytes and returns the parsed transcript.
// Failures are classified per the batch failure taxonomy; the client
// never retries; retry policy belongs to the orchestrator.
func (c *Client) Submit(ctx context.Context, file media.MediaFile, req Request) (Result, error) {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return Result{}, domain.NewError(domain.KindFileRead, file.Path, "failed to read media file", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.listenURL(req), bytes.NewReader(data))
	if err != nil {
		return Result{}, domain.NewError(domain.KindNetwork, file.Path, "failed to create request", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)
	httpReq.Header.Set("Content-Type", file.ContentType())

	c.logger.Debug("Submitting media file",
		logger.String("file", file.Name()),
		logger.String("content_type", file.ContentType()),
		logger.Bool("diarize", req.Diarize),
		logger.Int("bytes", len(data)),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, domain.NewError(domain.KindNetwork, file.Path, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		body := readBodySnippet(resp.Body)
		return Result{}, &domain.Error{
			Kind:    domain.KindAuthentication,
			Path:    file.Path,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("API key rejected: %s", body),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body := readBodySnippet(resp.Body)
		return Result{}, &domain.Error{
			Kind:    domain.KindService,
			Path:    file.Path,
			Status:  resp.StatusCode,
			Message: body,
		}
	}

	var parsed listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, domain.NewError(domain.KindResponseParse, file.Path, "failed to decode response body", err)
	}

	return mapResult(parsed, req.Diarize, file.Path)
}

// mapResult converts the wire response into the typed Result. Shape
// mismatches fail fast here so downstream code never sees loose data.
func mapResult(parsed listenResponse, diarize bool, path string) (Result, error) {
	if diarize && len(parsed.Results.Utterances) > 0 {
		utterances := make([]Utterance, 0, len(parsed.Results.Utterances))
		for _, u := range parsed.Results.Utterances {
			utterances = append(utterances, Utterance{
				Speaker: u.Speaker,
				Text:    u.Transcript,
				Start:   u.Start,
				End:     u.End,
			})
		}
		return Result{Utterances: utterances}, nil
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return Result{}, domain.NewError(domain.KindResponseParse, path, "response has no utterances or channel alternatives", nil)
	}
	alt := parsed.Results.Channels[0].Alternatives[0]

	// Diarization requested but the service returned only word-level
	// entries: group consecutive words by speaker into utterances.
	if diarize && len(alt.Words) > 0 {
		return Result{Utterances: groupWordsBySpeaker(alt.Words)}, nil
	}

	if strings.TrimSpace(alt.Transcript) == "" {
		return Result{}, nil
	}
	return Result{Utterances: []Utterance{{Speaker: -1, Text: alt.Transcript}}}, nil
}

// groupWordsBySpeaker merges adjacent words from the same speaker into one
// utterance, joining words with single spaces.
func groupWordsBySpeaker(words []wireWord) []Utterance {
	var utterances []Utterance
	var current *Utterance
	var parts []string

	flush := func() {
		if current != nil {
			current.Text = strings.Join(parts, " ")
			utterances = append(utterances, *current)
		}
	}

	for _, w := range words {
		speaker := 0
		if w.Speaker != nil {
			speaker = *w.Speaker
		}
		text := w.PunctuatedWord
		if text == "" {
			text = w.Word
		}

		if current == nil || current.Speaker != speaker {
			flush()
			current = &Utterance{Speaker: speaker, Start: w.Start, End: w.End}
			parts = parts[:0]
		}
		current.End = w.End
		parts = append(parts, text)
	}
	flush()

	return utterances
}

// readBodySnippet drains up to 1KB of the body for error messages.
func readBodySnippet(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1024))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
