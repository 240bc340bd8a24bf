package logger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type lokiRecorder struct {
	mu     sync.Mutex
	pushes []lokiPush
}

func (r *lokiRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, lokiPushPath, req.URL.Path)

		var body lokiPush
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))

		r.mu.Lock()
		r.pushes = append(r.pushes, body)
		r.mu.Unlock()

		w.WriteHeader(http.StatusNoContent)
	}
}

func (r *lokiRecorder) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string

	for _, push := range r.pushes {
		for _, stream := range push.Streams {
			for _, value := range stream.Values {
				out = append(out, value[1])
			}
		}
	}

	return out
}

func TestLokiWriter_SyncPushesBufferedLines(t *testing.T) {
	recorder := &lokiRecorder{}
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	w := NewLokiWriter(server.URL, map[string]string{"service": "taskmanager"})
	defer w.Close()

	_, _ = w.Write([]byte(`{"msg":"one"}` + "\n"))
	_, _ = w.Write([]byte(`{"msg":"two"}` + "\n"))

	assert.NoError(t, w.Sync())
	assert.Equal(t, []string{`{"msg":"one"}`, `{"msg":"two"}`}, recorder.lines())

	recorder.mu.Lock()
	assert.Equal(t, "taskmanager", recorder.pushes[0].Streams[0].Stream["service"])
	recorder.mu.Unlock()
}

func TestLokiWriter_SyncWithoutEntriesIsNoop(t *testing.T) {
	recorder := &lokiRecorder{}
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	w := NewLokiWriter(server.URL, nil)
	defer w.Close()

	assert.NoError(t, w.Sync())
	assert.Empty(t, recorder.lines())
}

func TestLokiWriter_ReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	w := NewLokiWriter(server.URL, nil)
	defer w.Close()

	_, _ = w.Write([]byte("line"))

	assert.Error(t, w.Sync())
}

func TestNew_TeesIntoLoki(t *testing.T) {
	recorder := &lokiRecorder{}
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	log, err := New(Options{ServiceName: "taskmanager", Level: "info", LokiURL: server.URL})
	assert.NoError(t, err)

	log.Ctx(context.Background()).Info("task created", zap.Int64("task_id", 7))
	log.Debug("filtered out")

	_ = log.Sync()

	lines := recorder.lines()
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"msg":"task created"`)
	assert.Contains(t, lines[0], `"task_id":7`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})

	assert.Error(t, err)
}
