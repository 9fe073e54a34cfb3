// Package main implements a mock Discord webhook receiver for local
// development. It accepts review alert payloads, keeps the most recent ones
// in memory and can be told to rate limit or fail every Nth delivery.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

// webhookPayload mirrors the subset of the Discord execute-webhook body the
// service sends.
type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string       `json:"title"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color"`
	Description string       `json:"description,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// received is one accepted delivery.
type received struct {
	Webhook    string         `json:"webhook"`
	ReceivedAt time.Time      `json:"received_at"`
	Payload    webhookPayload `json:"payload"`
}

// faults controls simulated failures. Zero disables a fault.
type faults struct {
	RateLimitEvery int
	FailEvery      int
}

type inbox struct {
	mu       sync.Mutex
	max      int
	count    int
	messages []received
}

func newInbox(maxMessages int) *inbox {
	return &inbox{max: maxMessages}
}

// next returns the 1-based sequence number of the next delivery.
func (b *inbox) next() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count++
	return b.count
}

func (b *inbox) add(m received) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, m)
	if len(b.messages) > b.max {
		b.messages = b.messages[len(b.messages)-b.max:]
	}
}

func (b *inbox) list() []received {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]received, len(b.messages))
	copy(out, b.messages)
	return out
}

func (b *inbox) clear() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.messages)
	b.messages = nil
	return n
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	keep := flag.Int("keep", 100, "number of deliveries to keep in memory")
	rateLimitEvery := flag.Int("rate-limit-every", 0, "answer every Nth delivery with 429")
	failEvery := flag.Int("fail-every", 0, "answer every Nth delivery with 500")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mux := newMux(logger, newInbox(*keep), faults{RateLimitEvery: *rateLimitEvery, FailEvery: *failEvery})

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Discord webhook server", "addr", addr,
		"webhook_url", fmt.Sprintf("http://localhost%s/api/webhooks/local/token", addr))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, box *inbox, f faults) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/webhooks/{id}/{token}", webhookHandler(logger, box, f))
	mux.HandleFunc("GET /messages", messagesHandler(box))
	mux.HandleFunc("DELETE /messages", clearHandler(logger, box))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func webhookHandler(logger *slog.Logger, box *inbox, f faults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seq := box.next()

		if f.RateLimitEvery > 0 && seq%f.RateLimitEvery == 0 {
			logger.Warn("simulating rate limit", "delivery", seq)
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"message":     "You are being rate limited.",
				"retry_after": 1.5,
				"global":      false,
			})
			return
		}
		if f.FailEvery > 0 && seq%f.FailEvery == 0 {
			logger.Warn("simulating failure", "delivery", seq)
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "500: Internal Server Error"})
			return
		}

		var p webhookPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Cannot send an empty message", "code": 50006})
			return
		}
		if len(p.Embeds) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Cannot send an empty message", "code": 50006})
			return
		}

		box.add(received{Webhook: r.PathValue("id"), ReceivedAt: time.Now(), Payload: p})
		for _, e := range p.Embeds {
			logger.Info("review alert", "title", e.Title, "url", e.URL, "fields", len(e.Fields))
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func messagesHandler(box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, box.list())
	}
}

func clearHandler(logger *slog.Logger, box *inbox) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		n := box.clear()
		logger.Info("cleared messages", "count", n)
		writeJSON(w, http.StatusOK, map[string]int{"cleared": n})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
