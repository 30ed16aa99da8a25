// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/zmhindex/internal/build"
	"github.com/taibuivan/zmhindex/internal/catalog"
	"github.com/taibuivan/zmhindex/internal/platform/builderr"
	"github.com/taibuivan/zmhindex/internal/platform/respond"
)

// BuildDependencies wires the orchestration server's /status and
// /rebuild handlers to the build driver. OpenSource is called fresh on
// every rebuild since a [catalog.Source] wraps a single-use connection
// or cursor.
type BuildDependencies struct {
	Store      *build.Store
	OpenSource func() (catalog.Source, string, error)
	Options    build.Options
}

// buildHandler serves /status and /rebuild.
type buildHandler struct {
	deps   BuildDependencies
	logger *slog.Logger
}

// NewBuildHandlers constructs the status and rebuild [http.HandlerFunc] pair.
func NewBuildHandlers(deps BuildDependencies, logger *slog.Logger) (status, rebuild http.HandlerFunc) {
	handler := &buildHandler{deps: deps, logger: logger}
	return handler.status, handler.rebuild
}

// status handles GET /status, reporting the last completed build record.
// It answers an empty object, not an error, when no build has run yet.
func (h *buildHandler) status(writer http.ResponseWriter, _ *http.Request) {
	rec := h.deps.Store.Last()
	if rec == nil {
		respond.OK(writer, map[string]any{})
		return
	}
	respond.OK(writer, rec)
}

// rebuild handles POST /rebuild. It refuses to overlap a second build
// while one is already running, then streams the catalog source through
// the build driver synchronously and reports the resulting record.
func (h *buildHandler) rebuild(writer http.ResponseWriter, request *http.Request) {
	if !h.deps.Store.TryStart() {
		respond.Error(writer, request, builderr.Conflict("a build is already running"))
		return
	}

	source, label, err := h.deps.OpenSource()
	if err != nil {
		rec := build.NewRecord("unknown")
		rec.Err = err.Error()
		rec.FinishedAt = time.Now().UTC()
		h.deps.Store.Finish(rec)
		respond.Error(writer, request, builderr.Internal(err))
		return
	}
	defer source.Close()

	rec := build.NewRecord(label)
	result, err := build.Run(request.Context(), source, h.deps.Options, h.logger)
	rec.FinishedAt = time.Now().UTC()
	if err != nil {
		rec.Err = err.Error()
		h.deps.Store.Finish(rec)
		respond.Error(writer, request, builderr.Internal(err))
		return
	}

	rec.Stats = result.Stats
	rec.ManifestSHA256 = result.ManifestSHA256
	h.deps.Store.Finish(rec)
	respond.OK(writer, rec)
}
