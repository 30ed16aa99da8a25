// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package build

import (
	"sync"
	"time"

	"github.com/taibuivan/zmhindex/pkg/uuidv7"
)

// Record is the operational telemetry for one build invocation. It is
// never written into manifest.json and never written to Redis — only
// held in memory for the life of the process, so the orchestration
// server's /status endpoint has something to report.
type Record struct {
	BuildID        string    `json:"buildId"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt"`
	Source         string    `json:"source"`
	Stats          Stats     `json:"stats"`
	ManifestSHA256 string    `json:"manifestSha256"`
	Err            string    `json:"error,omitempty"`
}

// NewRecord starts a Record for a build against source (a driver name
// and DSN host only — never credentials).
func NewRecord(source string) *Record {
	return &Record{
		BuildID:   uuidv7.New(),
		StartedAt: time.Now().UTC(),
		Source:    source,
	}
}

// Store holds the most recent Record for the orchestration server to
// report, and a flag marking whether a build is currently running so
// /rebuild can refuse to overlap two builds.
type Store struct {
	mu      sync.Mutex
	last    *Record
	running bool
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// TryStart marks a build as running, returning false if one is already
// in flight.
func (s *Store) TryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

// Finish records rec as the last completed build and clears the running flag.
func (s *Store) Finish(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.last = rec
}

// Last returns the most recently finished Record, or nil if no build has
// completed yet.
func (s *Store) Last() *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Running reports whether a build is currently in flight.
func (s *Store) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
