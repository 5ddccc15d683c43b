// Package freedict looks words up in the FreeDictionary API
// (https://dictionaryapi.dev).
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zam-dot/wordly/internal/lexicon"
	"github.com/zam-dot/wordly/internal/session"
)

const (
	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout = 10 * time.Second

	// maxBodySize caps how much of a response is read.
	maxBodySize = 2 << 20
)

var _ session.Lookup = (*Client)(nil)

// Options configures a Client. Zero values take defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retry      bool
	RetryDelay time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// Client fetches dictionary records over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      bool
	retryDelay time.Duration
	userAgent  string
	log        *slog.Logger
}

func NewClient(opts Options, logger *slog.Logger) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 500 * time.Millisecond
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		retry:      opts.Retry,
		retryDelay: retryDelay,
		userAgent:  opts.UserAgent,
		log:        logger.With("adapter", "freedict"),
	}
}

// Lookup fetches the first entry for word. The word goes into the request
// path as given, escaped but not otherwise normalized.
func (c *Client) Lookup(ctx context.Context, word string) (lexicon.Record, error) {
	reqURL := c.baseURL + "/" + url.PathEscape(word)

	c.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return lexicon.Record{}, &session.TransportError{Op: "freedict: create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.doWithRetry(ctx, req, word)
	if err != nil {
		c.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return lexicon.Record{}, &session.TransportError{Op: "freedict: request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return lexicon.Record{}, fmt.Errorf("freedict: %q: %w", word, session.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return lexicon.Record{}, &session.TransportError{Op: "freedict", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return lexicon.Record{}, &session.TransportError{Op: "freedict: read body", Err: err}
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return lexicon.Record{}, &session.TransportError{Op: "freedict: decode json", Err: err}
	}
	if len(entries) == 0 {
		return lexicon.Record{}, fmt.Errorf("freedict: %q: empty response: %w", word, session.ErrNotFound)
	}

	rec := mapEntry(entries[0])

	c.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("entries", len(entries)),
		slog.Int("meanings", len(rec.Meanings)),
		slog.Int("phonetics", len(rec.Phonetics)),
	)
	return rec, nil
}

// doWithRetry executes the request, retrying once on 5xx or network errors
// when retries are enabled.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := c.retry && (err != nil || (resp != nil && resp.StatusCode >= 500))
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.retryDelay):
	}

	return c.httpClient.Do(req)
}

func mapEntry(e apiEntry) lexicon.Record {
	rec := lexicon.Record{
		Word:     e.Word,
		Phonetic: cleanText(e.Phonetic),
	}
	for _, ph := range e.Phonetics {
		rec.Phonetics = append(rec.Phonetics, lexicon.Phonetic{
			Text:  cleanText(ph.Text),
			Audio: strings.TrimSpace(ph.Audio),
		})
	}
	for _, m := range e.Meanings {
		meaning := lexicon.Meaning{PartOfSpeech: strings.TrimSpace(m.PartOfSpeech)}
		for _, d := range m.Definitions {
			meaning.Definitions = append(meaning.Definitions, lexicon.Definition{
				Definition: cleanText(d.Definition),
				Example:    cleanText(d.Example),
			})
		}
		for _, s := range m.Synonyms {
			meaning.Synonyms = append(meaning.Synonyms, cleanText(s))
		}
		rec.Meanings = append(rec.Meanings, meaning)
	}
	return rec
}
