// Package rotator sequences a gallery of images: one shown at a time,
// advancing on a fixed interval and looping, with manual jumps.
package rotator

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultInterval is the auto-advance period used by the gallery endpoint.
const DefaultInterval = 5 * time.Second

const preloadConcurrency = 4

var (
	ErrNoImages        = errors.New("rotator: no images")
	ErrInvalidInterval = errors.New("rotator: interval must be positive")
	ErrIndexOutOfRange = errors.New("rotator: index out of range")
)

// Rotator holds the position within a sequence of image references.
// A sequence of one image is static: it never advances.
type Rotator struct {
	mu       sync.Mutex
	refs     []string
	interval time.Duration
	index    int
	phase    time.Duration
	reset    chan struct{}
}

// New builds a Rotator at index 0. interval is ignored for a single image.
func New(refs []string, interval time.Duration) (*Rotator, error) {
	if len(refs) == 0 {
		return nil, ErrNoImages
	}
	if len(refs) > 1 && interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Rotator{
		refs:     append([]string(nil), refs...),
		interval: interval,
		reset:    make(chan struct{}, 1),
	}, nil
}

// Len returns the number of images.
func (r *Rotator) Len() int { return len(r.refs) }

// Static reports whether the sequence never advances.
func (r *Rotator) Static() bool { return len(r.refs) < 2 }

// Index returns the current position.
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Current returns the image at the current position.
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs[r.index]
}

// Elapse advances the sequence by every whole interval contained in d plus
// the time already carried since the last advance, and returns the new index.
func (r *Rotator) Elapse(d time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Static() || d <= 0 {
		return r.index
	}

	total := r.phase + d
	steps := int(total / r.interval)
	r.phase = total % r.interval
	r.index = (r.index + steps) % len(r.refs)
	return r.index
}

// Jump moves to index i and restarts the interval, so the next automatic
// advance comes one full interval later.
func (r *Rotator) Jump(i int) error {
	r.mu.Lock()
	if i < 0 || i >= len(r.refs) {
		r.mu.Unlock()
		return ErrIndexOutOfRange
	}
	r.index = i
	r.phase = 0
	r.mu.Unlock()

	select {
	case r.reset <- struct{}{}:
	default:
	}
	return nil
}

// Run advances the sequence on a real timer until ctx is done, calling
// onChange after each automatic advance. It returns immediately for a static
// sequence. The timer is stopped before Run returns.
func (r *Rotator) Run(ctx context.Context, onChange func(index int, ref string)) error {
	if r.Static() {
		return nil
	}

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.reset:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(r.interval)
		case <-timer.C:
			r.mu.Lock()
			r.index = (r.index + 1) % len(r.refs)
			r.phase = 0
			index, ref := r.index, r.refs[r.index]
			r.mu.Unlock()

			if onChange != nil {
				onChange(index, ref)
			}
			timer.Reset(r.interval)
		}
	}
}

// FetchFunc loads one image reference.
type FetchFunc func(ctx context.Context, ref string) error

// Preload fetches every reference concurrently and waits for all of them.
// A failed fetch does not stop the others and does not fail the preload;
// the failures are returned keyed by reference for logging.
func Preload(ctx context.Context, refs []string, fetch FetchFunc) map[string]error {
	var (
		mu       sync.Mutex
		failures = make(map[string]error)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			if err := fetch(gctx, ref); err != nil {
				mu.Lock()
				failures[ref] = err
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return failures
}

// Descriptor tells a client how to present a gallery.
type Descriptor struct {
	Images      []string `json:"images"`
	IntervalMs  int64    `json:"intervalMs"`
	AutoAdvance bool     `json:"autoAdvance"`
	Indicators  int      `json:"indicators"`
	Transition  bool     `json:"transition"`
}

// Describe returns the presentation for refs. A single image gets no timer,
// no indicators and no transition; an empty gallery gets nothing at all.
func Describe(refs []string, interval time.Duration) Descriptor {
	d := Descriptor{Images: append([]string{}, refs...)}
	if len(refs) < 2 {
		return d
	}
	d.IntervalMs = interval.Milliseconds()
	d.AutoAdvance = true
	d.Indicators = len(refs)
	d.Transition = true
	return d
}
