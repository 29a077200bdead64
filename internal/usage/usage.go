// Package usage obtains the quota snapshot: percentages, reset timestamps
// and extra-spend amounts for the current session and rolling weeks. The
// snapshot comes from a disk cache when fresh, otherwise from an external
// fetch command. From the renderers' point of view it is read-only and
// every field is independently optional.
package usage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// CacheMaxAge is the snapshot cache lifetime. The status line also renders
// the time left until the next refresh from this constant.
const CacheMaxAge = 600 * time.Second

// CacheFileName is the snapshot file name under Source.CacheDir.
const CacheFileName = "usage.json"

// ErrNoData is returned when neither the cache nor the fetcher produced a
// usable snapshot.
var ErrNoData = errors.New("no usage data available")

// Snapshot mirrors the fetcher's JSON. Percent and reset fields are
// independently optional; consumers must treat any absent field as "omit".
type Snapshot struct {
	SessionPercent *float64 `json:"session_percent,omitempty"`
	WeekPercent    *float64 `json:"week_percent,omitempty"`
	SonnetPercent  *float64 `json:"sonnet_percent,omitempty"`
	ExtraPercent   *float64 `json:"extra_percent,omitempty"`

	ExtraSpent *float64 `json:"extra_spent,omitempty"`
	ExtraLimit *float64 `json:"extra_limit,omitempty"`

	SessionReset string `json:"session_reset,omitempty"`
	WeekReset    string `json:"week_reset,omitempty"`
	SonnetReset  string `json:"sonnet_reset,omitempty"`
	ExtraReset   string `json:"extra_reset,omitempty"`

	LastUpdated string `json:"last_updated,omitempty"`
}

// HasPercentages reports whether any quota percentage is present.
func (s *Snapshot) HasPercentages() bool {
	return s.SessionPercent != nil || s.WeekPercent != nil ||
		s.SonnetPercent != nil || s.ExtraPercent != nil
}

// FetchRunner executes the external usage fetch command and returns its
// stdout. This abstraction allows mocking in tests.
type FetchRunner func(name string, args ...string) ([]byte, error)

// Source loads snapshots, caching them on disk for CacheMaxAge.
type Source struct {
	CacheDir string // snapshot lives at CacheDir/usage.json
	Command  string // external fetch command; empty disables fetching
	Runner   FetchRunner

	// Now is the clock used for cache freshness; nil means time.Now.
	Now func() time.Time
}

func defaultFetchRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (s *Source) cachePath() string {
	return filepath.Join(s.CacheDir, CacheFileName)
}

func (s *Source) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load returns the cached snapshot when it is younger than CacheMaxAge,
// otherwise fetches a fresh one. force bypasses the cache entirely.
func (s *Source) Load(force bool) (*Snapshot, error) {
	if !force {
		if snap, ok := s.readCache(); ok {
			return snap, nil
		}
	}

	snap, err := s.fetch()
	if err != nil {
		// A stale cache beats nothing at all.
		if snap, ok := s.readCacheAnyAge(); ok {
			return snap, nil
		}
		return nil, err
	}
	s.writeCache(snap)
	return snap, nil
}

// readCache returns the cached snapshot if the file's mtime is fresh.
func (s *Source) readCache() (*Snapshot, bool) {
	fi, err := os.Stat(s.cachePath())
	if err != nil || s.now().Sub(fi.ModTime()) > CacheMaxAge {
		return nil, false
	}
	return s.readCacheAnyAge()
}

func (s *Source) readCacheAnyAge() (*Snapshot, bool) {
	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		return nil, false
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (s *Source) writeCache(snap *Snapshot) {
	if err := os.MkdirAll(s.CacheDir, 0o755); err != nil {
		return
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}
	// Best effort: a failed cache write only costs the next invocation a fetch.
	_ = os.WriteFile(s.cachePath(), append(data, '\n'), 0o644)
}

// fetch runs the external command. The command receives a throwaway session
// id so the fetch session can be identified and cleaned up by the fetcher.
func (s *Source) fetch() (*Snapshot, error) {
	if s.Command == "" {
		return nil, ErrNoData
	}
	runner := s.Runner
	if runner == nil {
		runner = defaultFetchRunner
	}

	out, err := runner(s.Command, "--session-id", uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("usage fetch: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(out, &snap); err != nil {
		return nil, fmt.Errorf("usage fetch: decoding output: %w", err)
	}
	if snap.LastUpdated == "" {
		snap.LastUpdated = s.now().Format(time.RFC3339)
	}
	return &snap, nil
}
