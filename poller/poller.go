package poller

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/blogem/boardhook/models"
)

const (
	DefaultInterval         = 3 * time.Second
	DefaultTimeout          = 10 * time.Second
	DefaultMaxNotifications = 3
)

// Source reads a tenant's event log
type Source interface {
	ReadSince(ctx context.Context, lastKnownVersion int64) (models.EventPage, error)
}

type Logger interface {
	Printf(format string, args ...any)
}

// Options configures a Poller. Zero values pick the defaults.
type Options struct {
	Interval time.Duration
	// Jitter spreads each wait by up to this ratio of Interval (0.0-1.0)
	Jitter           float64
	Timeout          time.Duration
	MaxNotifications int
	// Notify is called for each fresh event, newest first, up to MaxNotifications
	Notify func(event models.Event)
	// OnChange is called once per poll that detected a change, after Notify
	OnChange func(ctx context.Context, update Update)
	Logger   Logger
}

// Poller drives a Tracker against a Source on an interval
type Poller struct {
	source  Source
	tracker Tracker
	opts    Options
	rng     *rand.Rand
}

// New creates a poller
func New(source Source, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxNotifications <= 0 {
		opts.MaxNotifications = DefaultMaxNotifications
	}
	opts.Jitter = clampJitterRatio(opts.Jitter)
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Poller{
		source: source,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PollOnce reads the log once and dispatches the callbacks. A failed read
// leaves the last known version untouched.
func (p *Poller) PollOnce(ctx context.Context) (Update, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	page, err := p.source.ReadSince(ctx, p.tracker.LastKnown())
	if err != nil {
		return Update{}, err
	}

	update := p.tracker.Observe(page)
	if !update.Changed {
		return update, nil
	}

	if p.opts.Notify != nil {
		for i, event := range update.Fresh {
			if i >= p.opts.MaxNotifications {
				break
			}
			p.opts.Notify(event)
		}
	}
	if p.opts.OnChange != nil && update.Refresh {
		p.opts.OnChange(ctx, update)
	}
	return update, nil
}

// Run polls until ctx is cancelled. Poll errors are logged and the loop goes on.
func (p *Poller) Run(ctx context.Context) error {
	p.poll(ctx)

	timer := time.NewTimer(p.nextDelay())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			p.poll(ctx)
			timer.Reset(p.nextDelay())
		}
	}
}

// Reset drops the baseline so the next poll does not surface old events
func (p *Poller) Reset() {
	p.tracker.Reset()
}

// LastKnown returns the version seen by the latest successful poll
func (p *Poller) LastKnown() int64 {
	return p.tracker.LastKnown()
}

func (p *Poller) poll(ctx context.Context) {
	if _, err := p.PollOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.opts.Logger.Printf("poll failed: %v", err)
	}
}

func (p *Poller) nextDelay() time.Duration {
	return jitteredInterval(p.opts.Interval, p.opts.Jitter, p.rng.Float64())
}

func clampJitterRatio(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// jitteredInterval maps sample in [0,1] to base*(1-ratio) .. base*(1+ratio)
func jitteredInterval(base time.Duration, jitterRatio, sample float64) time.Duration {
	if base <= 0 {
		return 0
	}
	jitterRatio = clampJitterRatio(jitterRatio)
	if jitterRatio == 0 {
		return base
	}
	if sample < 0 {
		sample = 0
	} else if sample > 1 {
		sample = 1
	}
	delay := time.Duration(float64(base) * (1 + ((sample*2)-1)*jitterRatio))
	if delay < time.Millisecond {
		return time.Millisecond
	}
	return delay
}
