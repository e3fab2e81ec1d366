package game

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// FileWatcher polls the layer files of a scenario and reports the ones whose
// modification time moved forward. Files may appear after the watch starts.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration

	notify func(path string)
	seen   map[string]time.Time
}

func NewFileWatcher(paths []string, interval time.Duration, notify func(path string)) *FileWatcher {
	return &FileWatcher{
		Paths:    paths,
		Interval: interval,
		notify:   notify,
		seen:     make(map[string]time.Time, len(paths)),
	}
}

// Run records the current state, then polls every Interval until ctx ends.
// It returns ctx.Err().
func (w *FileWatcher) Run(ctx context.Context) error {
	w.scanAll(true)

	tick := time.NewTicker(w.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			w.scanAll(false)
		}
	}
}

// scanAll notifies for every changed file unless prime is set.
func (w *FileWatcher) scanAll(prime bool) {
	for _, path := range w.Paths {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			log.Warn().Err(err).Str("file", path).Msg("cannot stat watched file")
			continue
		}
		if prev, ok := w.seen[path]; ok && !info.ModTime().After(prev) {
			continue
		}
		w.seen[path] = info.ModTime()
		if !prime && w.notify != nil {
			w.notify(path)
		}
	}
}
