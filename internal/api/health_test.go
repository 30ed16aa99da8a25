// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/zmhindex/internal/build"
	"github.com/taibuivan/zmhindex/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLivenessAlwaysOK(t *testing.T) {
	liveness, _ := NewHealthHandlers(HealthDependencies{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	liveness(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
}

func TestReadinessDegradesOnFailedCheck(t *testing.T) {
	_, readiness := NewHealthHandlers(HealthDependencies{
		CheckCatalog: func() error { return errors.New("catalog unreachable") },
	}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	readiness(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadinessOKWithNoChecksConfigured(t *testing.T) {
	_, readiness := NewHealthHandlers(HealthDependencies{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	readiness(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

type emptySource struct{}

func (emptySource) EachRow(_ context.Context, _ func([]byte) error) error { return nil }
func (emptySource) Close() error                                         { return nil }

func TestRebuildRejectsOverlappingRuns(t *testing.T) {
	store := build.NewStore()
	require.True(t, store.TryStart())

	_, rebuild := NewBuildHandlers(BuildDependencies{
		Store: store,
		OpenSource: func() (catalog.Source, string, error) {
			return emptySource{}, "fake", nil
		},
	}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/rebuild", nil)
	rec := httptest.NewRecorder()
	rebuild(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatusReportsEmptyObjectBeforeFirstBuild(t *testing.T) {
	status, _ := NewBuildHandlers(BuildDependencies{Store: build.NewStore()}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Empty(t, data)
}
