package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	lokiPushPath      = "/loki/api/v1/push"
	lokiFlushInterval = 2 * time.Second
	lokiMaxBatch      = 500
)

type lokiPush struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// LokiWriter is a zapcore.WriteSyncer that batches encoded entries and
// pushes them to Loki. Push failures are dropped.
type LokiWriter struct {
	url        string
	labels     map[string]string
	httpClient *http.Client

	mu      sync.Mutex
	pending [][]string

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewLokiWriter(baseURL string, labels map[string]string) *LokiWriter {
	w := &LokiWriter{
		url:    strings.TrimRight(baseURL, "/") + lokiPushPath,
		labels: labels,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		done: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w
}

func (w *LokiWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	ts := strconv.FormatInt(time.Now().UnixNano(), 10)

	w.mu.Lock()
	w.pending = append(w.pending, []string{ts, line})
	full := len(w.pending) >= lokiMaxBatch
	w.mu.Unlock()

	if full {
		_ = w.Sync()
	}

	return len(p), nil
}

// Sync pushes everything buffered so far.
func (w *LokiWriter) Sync() error {
	w.mu.Lock()
	batch := w.pending
	w.pending = nil
	w.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	return w.push(batch)
}

func (w *LokiWriter) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		_ = w.Sync()
	})
}

func (w *LokiWriter) loop() {
	defer w.wg.Done()

	ticker := time.NewTicker(lokiFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = w.Sync()
		case <-w.done:
			return
		}
	}
}

func (w *LokiWriter) push(values [][]string) error {
	body, err := json.Marshal(lokiPush{
		Streams: []lokiStream{{Stream: w.labels, Values: values}},
	})

	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("loki push: unexpected status %d", resp.StatusCode)
	}

	return nil
}
