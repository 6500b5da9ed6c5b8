package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/erkineren/homework-monitor/internal/apperr"
	"github.com/erkineren/homework-monitor/internal/homework"
	"github.com/erkineren/homework-monitor/internal/models"
	"github.com/erkineren/homework-monitor/internal/store"
)

// Fetcher returns the raw homework API answer for updates after since.
type Fetcher interface {
	Fetch(ctx context.Context, since int64) ([]byte, error)
}

// Sink delivers a text message to the configured chat.
type Sink interface {
	Send(ctx context.Context, text string) error
}

type Options struct {
	Interval       time.Duration
	RequestTimeout time.Duration
	StartFrom      int64
	ReportErrors   bool
}

// Monitor is the poll loop. It is not safe for concurrent use; one goroutine
// owns the stored state and the checkpoint.
type Monitor struct {
	fetcher Fetcher
	sink    Sink
	store   store.Store
	log     zerolog.Logger
	opts    Options

	state        models.NotificationState
	checkpoint   int64
	lastReported string
}

func New(fetcher Fetcher, sink Sink, st store.Store, log zerolog.Logger, opts Options) *Monitor {
	if st == nil {
		st = store.NewMemory()
	}
	return &Monitor{
		fetcher:    fetcher,
		sink:       sink,
		store:      st,
		log:        log,
		opts:       opts,
		checkpoint: opts.StartFrom,
	}
}

// State returns the last notification confirmed as delivered.
func (m *Monitor) State() models.NotificationState {
	return m.state
}

func (m *Monitor) Checkpoint() int64 {
	return m.checkpoint
}

// Restore loads the stored snapshot. A snapshot without a checkpoint keeps
// the configured start point.
func (m *Monitor) Restore(ctx context.Context) error {
	snap, err := m.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore state: %w", err)
	}
	m.state = snap.State
	if snap.Checkpoint > 0 {
		m.checkpoint = snap.Checkpoint
	}
	m.log.Debug().
		Str("homework", snap.State.Name).
		Int64("checkpoint", m.checkpoint).
		Msg("state restored")
	return nil
}

// Run polls until ctx is cancelled. A failed cycle is logged and never stops
// the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info().
		Dur("interval", m.opts.Interval).
		Int64("checkpoint", m.checkpoint).
		Msg("homework monitor started")

	for {
		m.handle(ctx, m.cycle(ctx))

		if !sleep(ctx, m.opts.Interval) {
			m.log.Info().Msg("homework monitor shutting down")
			return nil
		}
	}
}

// cycle runs one iteration and turns a panic into an error.
func (m *Monitor) cycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panicked: %v", r)
		}
	}()
	return m.RunOnce(ctx)
}

// RunOnce performs a single fetch, validate, format, decide, send and
// advance pass. Stored state changes only after a confirmed send; the
// checkpoint advances only after a cycle that validated successfully and did
// not fail to deliver.
func (m *Monitor) RunOnce(ctx context.Context) error {
	fetchCtx, cancel := m.callContext(ctx)
	body, err := m.fetcher.Fetch(fetchCtx, m.checkpoint)
	cancel()
	if err != nil {
		return err
	}

	answer, err := homework.Validate(body)
	if err != nil {
		return err
	}

	if len(answer.Homeworks) == 0 {
		m.log.Debug().Int64("current_date", answer.CurrentDate).Msg(models.NoNewStatus)
		m.advance(ctx, answer.CurrentDate)
		return nil
	}

	record := answer.Homeworks[0]
	message, err := homework.Format(record)
	if err != nil {
		return err
	}
	candidate := models.NotificationState{Name: record.Name, Message: message}

	if candidate == m.state {
		m.log.Debug().Str("homework", record.Name).Msg("status unchanged, nothing to send")
		m.advance(ctx, answer.CurrentDate)
		return nil
	}

	sendCtx, cancel := m.callContext(ctx)
	err = m.sink.Send(sendCtx, message)
	cancel()
	if err != nil {
		if apperr.KindOf(err) != apperr.DeliveryFailed {
			err = apperr.Wrap(apperr.DeliveryFailed, "send", err)
		}
		return err
	}

	m.state = candidate
	m.log.Info().
		Str("homework", record.Name).
		Str("status", string(record.Status)).
		Msg("notification sent")
	m.advance(ctx, answer.CurrentDate)
	return nil
}

func (m *Monitor) advance(ctx context.Context, currentDate int64) {
	m.checkpoint = currentDate
	m.lastReported = ""

	snap := models.Snapshot{State: m.state, Checkpoint: m.checkpoint}
	if err := m.store.Save(ctx, snap); err != nil {
		m.log.Error().Err(err).Msg("failed to persist state")
	}
}

// handle logs a cycle outcome and, for failures other than delivery, makes a
// best-effort report to the chat.
func (m *Monitor) handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		m.log.Debug().Err(err).Msg("cycle interrupted")
		return
	}

	kind := apperr.KindOf(err)
	switch kind {
	case apperr.EmptyAnswer:
		m.log.Info().Err(err).Msg("answer carries no homework list")
		return
	case apperr.DeliveryFailed:
		m.log.Error().Err(err).Str("kind", kind.String()).Msg("failed to deliver notification, will retry next cycle")
		return
	default:
		m.log.Error().Err(err).Str("kind", kind.String()).Msg("monitor cycle failed")
	}

	if m.opts.ReportErrors {
		m.report(ctx, err)
	}
}

func (m *Monitor) report(ctx context.Context, cause error) {
	text := fmt.Sprintf("Monitor failure: %v", cause)
	if text == m.lastReported {
		m.log.Debug().Msg("failure already reported")
		return
	}

	sendCtx, cancel := m.callContext(ctx)
	defer cancel()
	if err := m.sink.Send(sendCtx, text); err != nil {
		m.log.Error().Err(err).Msg("failed to report failure")
		return
	}
	m.lastReported = text
}

func (m *Monitor) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.opts.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.opts.RequestTimeout)
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
