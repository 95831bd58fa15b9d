// Package registry maps opened video URLs to the pages they were discovered on.
package registry

import (
	"sync"
	"time"

	"github.com/episodic-ext/episodic/log"
	"github.com/samber/mo"
)

// Record ties a video URL to the source page hosting its link at the moment it
// was opened. SourceTabID is absent for videos opened outside a tracked tab.
type Record struct {
	SourceURL    string
	SourceTabID  mo.Option[int]
	RegisteredAt time.Time
}

// Registry is an in-memory table keyed by video URL. It is owned by the
// background dispatcher, lives for the life of the process and is never
// persisted; a restart clears it.
type Registry struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

// Register upserts the source record for a video URL, overwriting any existing
// record with a fresh timestamp.
func (r *Registry) Register(videoURL, sourceURL string, sourceTabID mo.Option[int]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[videoURL] = Record{
		SourceURL:    sourceURL,
		SourceTabID:  sourceTabID,
		RegisteredAt: r.now(),
	}
	log.Debugf("registered source %s for video %s", sourceURL, videoURL)
}

// Lookup returns the source record for a video URL, if one was registered.
func (r *Registry) Lookup(videoURL string) mo.Option[Record] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[videoURL]
	if !ok {
		return mo.None[Record]()
	}
	return mo.Some(record)
}

// Len reports the number of registered video URLs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
