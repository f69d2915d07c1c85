package main

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/dimcalc"
)

// configSource holds the current configuration. A reload swaps in a whole
// new Config, so evaluations in progress keep the one they started with.
type configSource struct {
	cur  atomic.Pointer[dimcalc.Config]
	load func() (*dimcalc.Config, error)
	log  zerolog.Logger
}

// Config returns the current configuration.
func (s *configSource) Config() *dimcalc.Config {
	return s.cur.Load()
}

// reload loads the configuration again. On error, the current one is kept.
func (s *configSource) reload() error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	s.cur.Store(cfg)
	return nil
}

// watch reloads the configuration whenever the file at path is written until
// ctx is canceled. The directory is watched rather than the file so that
// editors which replace the file are noticed.
func (s *configSource) watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}
	go s.events(ctx, w, filepath.Base(path))
	s.log.Info().Str("profile", path).Msg("watching profile")
	return nil
}

func (s *configSource) events(ctx context.Context, w *fsnotify.Watcher, name string) {
	defer w.Close()
	const debounce = 100 * time.Millisecond
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if time.Since(last) < debounce {
				continue
			}
			last = time.Now()
			if err := s.reload(); err != nil {
				s.log.Error().Err(err).Str("profile", ev.Name).Msg("reload failed; keeping previous configuration")
				continue
			}
			s.log.Info().Str("profile", ev.Name).Msg("profile reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Error().Err(err).Msg("watcher error")
		}
	}
}
