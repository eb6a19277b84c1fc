package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hazyhaar/tinge/audit"
	"github.com/hazyhaar/tinge/extractor"
	"github.com/hazyhaar/tinge/idgen"
)

// handler serves the extraction API. It owns the caller-side concerns the
// engine refuses to have: result caching, auditing, timeouts, status
// mapping.
type handler struct {
	svc     *extractor.Service
	cache   *lru.Cache[string, *extractor.Response]
	auditor *audit.Logger
	timeout time.Duration
	newID   idgen.Generator
	log     *slog.Logger
}

func newHandler(svc *extractor.Service, cacheSize int, auditor *audit.Logger, timeout time.Duration, log *slog.Logger) (*handler, error) {
	cache, err := lru.New[string, *extractor.Response](cacheSize)
	if err != nil {
		return nil, err
	}
	return &handler{
		svc:     svc,
		cache:   cache,
		auditor: auditor,
		timeout: timeout,
		newID:   idgen.Prefixed("req_", idgen.Default),
		log:     log,
	}, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *handler) extract(w http.ResponseWriter, r *http.Request) {
	reqID := h.newID()
	start := time.Now()

	var req extractor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}

	key := req.Source + ":" + audit.HashTarget(req.Data)
	if cached, ok := h.cache.Get(key); ok {
		h.log.Debug("extract: cache hit", "request_id", reqID, "source", req.Source)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.svc.Extract(ctx, req)
	entry := audit.Entry{
		RequestID:  reqID,
		Source:     req.Source,
		TargetHash: audit.HashTarget(req.Data),
		DurationMs: time.Since(start).Milliseconds(),
	}

	if err != nil {
		entry.Status = "error"
		entry.ErrorMessage = err.Error()
		h.auditor.Record(entry)

		status := http.StatusInternalServerError
		msg := "extraction failed"
		if extractor.IsUserError(err) {
			status = http.StatusBadRequest
			msg = err.Error()
		} else if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
			msg = "extraction timed out"
		}
		h.log.Warn("extract: failed",
			"request_id", reqID, "source", req.Source, "status", status, "error", err)
		writeJSON(w, status, errorBody{Error: msg})
		return
	}

	entry.Status = "success"
	entry.ExtractionSource = res.ExtractionSource
	entry.PaletteSize = len(res.Palette)
	h.auditor.Record(entry)
	h.cache.Add(key, res)

	h.log.Info("extract: done",
		"request_id", reqID, "source", req.Source,
		"palette", len(res.Palette), "strategy", res.ExtractionSource,
		"duration_ms", entry.DurationMs)
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
