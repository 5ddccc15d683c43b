package freedict

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zam-dot/wordly/internal/lexicon"
	"github.com/zam-dot/wordly/internal/session"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(url string, retry bool) *Client {
	return NewClient(Options{BaseURL: url, Retry: retry, RetryDelay: time.Millisecond, UserAgent: "wordly-test"}, newTestLogger())
}

const helloBody = `[{
	"word": "hello",
	"phonetic": "həˈləʊ",
	"phonetics": [
		{"text": "/həˈloʊ/", "audio": ""},
		{"text": "/hɛˈləʊ/", "audio": "https://example.com/hello-uk.mp3"}
	],
	"meanings": [
		{
			"partOfSpeech": "noun",
			"definitions": [
				{"definition": "A greeting.", "example": "She gave a cheerful hello."}
			],
			"synonyms": ["greeting"]
		},
		{
			"partOfSpeech": "interjection",
			"definitions": [
				{"definition": "Used as a <i>greeting</i> &amp; salute."}
			],
			"synonyms": []
		}
	]
}, {
	"word": "hello",
	"meanings": [{"partOfSpeech": "verb", "definitions": [{"definition": "ignored"}]}]
}]`

func TestClient_Lookup_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hello", r.URL.Path)
		assert.Equal(t, "wordly-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(helloBody))
	}))
	defer srv.Close()

	rec, err := newTestClient(srv.URL, false).Lookup(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "hello", rec.Word)
	assert.Equal(t, "həˈləʊ", rec.Phonetic)
	require.Len(t, rec.Phonetics, 2)
	assert.Equal(t, "https://example.com/hello-uk.mp3", rec.Phonetics[1].Audio)

	require.Len(t, rec.Meanings, 2, "only the first entry is used")
	assert.Equal(t, "noun", rec.Meanings[0].PartOfSpeech)
	assert.Equal(t, "She gave a cheerful hello.", rec.Meanings[0].Definitions[0].Example)
	assert.Equal(t, "Used as a greeting & salute.", rec.Meanings[1].Definitions[0].Definition)

	model := lexicon.Project(rec)
	assert.Equal(t, "https://example.com/hello-uk.mp3", model.AudioURL)
	assert.Equal(t, []string{"greeting"}, model.Synonyms)
	assert.Equal(t, "interj", model.Definitions[1].POS)
}

func TestClient_Lookup_EscapesWord(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[{"word":"a/b"}]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL+"/", false).Lookup(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "/a%2Fb", gotPath)
}

func TestClient_Lookup_NotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "404", status: http.StatusNotFound, body: `{"title":"No Definitions Found"}`},
		{name: "empty array", status: http.StatusOK, body: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, true).Lookup(context.Background(), "xyzzyqq")
			assert.ErrorIs(t, err, session.ErrNotFound)
		})
	}
}

func TestClient_Lookup_TransportErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "bad json", status: http.StatusOK, body: `{"word":`},
		{name: "wrong shape", status: http.StatusOK, body: `{"word":"x"}`},
		{name: "teapot", status: http.StatusTeapot, wantStatus: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, false).Lookup(context.Background(), "x")
			var te *session.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantStatus, te.Status)
			assert.NotErrorIs(t, err, session.ErrNotFound)
		})
	}
}

func TestClient_Lookup_RetryOnServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"word":"test","phonetics":[],"meanings":[]}]`))
	}))
	defer srv.Close()

	rec, err := newTestClient(srv.URL, true).Lookup(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "test", rec.Word)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Lookup_NoRetryWhenDisabled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, false).Lookup(context.Background(), "test")
	var te *session.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Lookup_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, true).Lookup(context.Background(), "hello")
	var te *session.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, session.MessageTransport, session.UserMessage(err))
}

func TestClient_Lookup_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"word":"x"}]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL, true).Lookup(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                          "",
		"plain text":                "plain text",
		"  spaced\n\tout  ":         "spaced out",
		"<b>bold</b> move":          "bold move",
		"fish &amp; chips":          "fish & chips",
		"x < y":                     "x < y",
		"a<script>evil()</script>b": "ab",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanText(in), in)
	}
}
