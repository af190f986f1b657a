package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"booklist/internal/book"
	"booklist/internal/fetchlog"

	"github.com/rs/zerolog"
)

// Loader fetches the base list once and publishes it when the fetch completes.
// The base list is written before Done is closed and never changes afterwards.
type Loader struct {
	src  Source
	runs fetchlog.Repository
	cfg  Config
	log  zerolog.Logger

	once    sync.Once
	done    chan struct{}
	records []book.Record
	err     error
}

func NewLoader(src Source, runs fetchlog.Repository, cfg Config, log zerolog.Logger) *Loader {
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	cfg.Limit = min(cfg.Limit, MaxLimit)
	if runs == nil {
		runs = fetchlog.Nop{}
	}
	return &Loader{
		src:  src,
		runs: runs,
		cfg:  cfg,
		log:  log,
		done: make(chan struct{}),
	}
}

// Start begins the fetch in the background. Only the first call has any effect.
func (l *Loader) Start(ctx context.Context) {
	l.once.Do(func() {
		go l.run(ctx)
	})
}

// Load starts the fetch if needed and waits for it. A failed fetch is reported but
// still leaves the loader ready with an empty base list.
func (l *Loader) Load(ctx context.Context) error {
	l.Start(ctx)
	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the fetch has finished, successfully or not.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

func (l *Loader) Loading() bool {
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

// Records returns a copy of the base list, empty while loading or after a failure.
func (l *Loader) Records() []book.Record {
	if l.Loading() || len(l.records) == 0 {
		return []book.Record{}
	}
	return slices.Clone(l.records)
}

// Err returns the fetch failure, if any. It is meant for diagnostics only.
func (l *Loader) Err() error {
	if l.Loading() {
		return nil
	}
	return l.err
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)

	records, err := l.fetch(ctx)
	if err != nil {
		l.err = fmt.Errorf("%w: %w", ErrFetchFailure, err)
		l.log.Error().Err(err).Str("subject", l.cfg.Subject).Msg("error fetching books")
		return
	}
	l.records = records
	l.log.Info().Str("subject", l.cfg.Subject).Int("records", len(records)).Msg("books loaded")
}

func (l *Loader) fetch(ctx context.Context) (records []book.Record, err error) {
	run := &fetchlog.Run{
		Status:         fetchlog.StatusRunning,
		Subject:        l.cfg.Subject,
		RequestedLimit: l.cfg.Limit,
		StartedAt:      time.Now(),
	}
	runID, rErr := l.runs.CreateRun(ctx, run)
	if rErr != nil {
		l.log.Warn().Err(rErr).Msg("failed to record fetch run")
	}
	run.ID = runID

	defer func() {
		if run.ID == "" {
			return
		}
		now := time.Now()
		run.FinishedAt = &now
		run.RecordsFetched = len(records)
		if err != nil {
			run.Status = fetchlog.StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = fetchlog.StatusCompleted
		}
		if updateErr := l.runs.UpdateRun(context.WithoutCancel(ctx), run); updateErr != nil {
			l.log.Warn().Err(updateErr).Str("run_id", run.ID).Msg("failed to update fetch run")
		}
	}()

	res, err := l.src.GetSubject(ctx, l.cfg.Subject, l.cfg.Limit)
	if err != nil {
		return nil, err
	}
	return Normalize(res.Works, l.cfg.Limit), nil
}
