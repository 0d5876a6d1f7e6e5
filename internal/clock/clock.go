// Package clock implements a two-player countdown chess clock with per-move
// increments. Remaining time is derived from timestamps; a ticker goroutine
// only delivers update and timeout notifications.
package clock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// TimeMode selects a time control.
type TimeMode int

const (
	None     TimeMode = iota // untimed
	Standard                 // 90 minutes + 30 seconds per move
	Rapid                    // 15 minutes + 10 seconds per move
	Blitz                    // 3 minutes + 2 seconds per move
)

// String returns the lowercase mode name.
func (m TimeMode) String() string {
	switch m {
	case None:
		return "none"
	case Standard:
		return "standard"
	case Rapid:
		return "rapid"
	case Blitz:
		return "blitz"
	}
	return "unknown"
}

// Control returns the starting time and per-move increment of the mode.
func (m TimeMode) Control() (base, increment time.Duration) {
	switch m {
	case Standard:
		return 90 * time.Minute, 30 * time.Second
	case Rapid:
		return 15 * time.Minute, 10 * time.Second
	case Blitz:
		return 3 * time.Minute, 2 * time.Second
	}
	return 0, 0
}

// ParseTimeMode converts a mode name as accepted on the command line.
func ParseTimeMode(s string) (TimeMode, error) {
	for _, m := range []TimeMode{None, Standard, Rapid, Blitz} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return None, fmt.Errorf("unknown time mode %q: %w", s, errors.ErrInvalidConfig)
}

// DefaultTickInterval is how often running clocks publish updates.
const DefaultTickInterval = time.Second

// Clock is a countdown clock for White and Black. White's time runs first
// unless WithFirstPlayer says otherwise.
type Clock struct {
	mu sync.Mutex

	mode      TimeMode
	base      time.Duration
	increment time.Duration
	tick      time.Duration
	now       func() time.Time
	first     chess.Colour

	// remaining is indexed by chess.Colour and excludes the running turn.
	remaining [3]time.Duration
	timedOut  [3]bool
	current   chess.Colour
	turnStart time.Time
	running   bool

	cancel context.CancelFunc
	done   chan struct{}

	onTimeout []func(chess.Colour)
	onUpdate  []func(chess.Colour, time.Duration)
}

// Option configures a Clock.
type Option func(*Clock)

// WithTickInterval sets how often updates are published.
func WithTickInterval(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithControl overrides the mode's starting time and increment.
func WithControl(base, increment time.Duration) Option {
	return func(c *Clock) {
		c.base, c.increment = base, increment
	}
}

// WithNow sets the time source.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// WithFirstPlayer sets whose time runs when the clock starts, for games
// set up with Black to move.
func WithFirstPlayer(colour chess.Colour) Option {
	return func(c *Clock) {
		if colour == chess.White || colour == chess.Black {
			c.first = colour
		}
	}
}

// New creates a stopped clock for mode.
func New(mode TimeMode, opts ...Option) *Clock {
	c := &Clock{
		mode:    mode,
		tick:    DefaultTickInterval,
		now:     time.Now,
		first:   chess.White,
	}
	c.base, c.increment = mode.Control()
	for _, opt := range opts {
		opt(c)
	}
	c.current = c.first
	c.remaining[chess.White] = c.base
	c.remaining[chess.Black] = c.base
	return c
}

// Mode returns the clock's time mode.
func (c *Clock) Mode() TimeMode {
	return c.mode
}

// untimed reports whether the clock never runs out.
func (c *Clock) untimed() bool {
	return c.base <= 0
}

// OnTimeout registers fn to be called once per player whose time runs out.
func (c *Clock) OnTimeout(fn func(chess.Colour)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTimeout = append(c.onTimeout, fn)
}

// OnUpdate registers fn to receive time-remaining updates.
func (c *Clock) OnUpdate(fn func(chess.Colour, time.Duration)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = append(c.onUpdate, fn)
}

// Start resets both players to the starting time, starts the first player's
// time and launches the ticker. The ticker stops when ctx is done or Stop is called.
// Starting an untimed clock does nothing.
func (c *Clock) Start(ctx context.Context) {
	if c.untimed() {
		return
	}
	c.Stop()

	c.mu.Lock()
	c.remaining[chess.White] = c.base
	c.remaining[chess.Black] = c.base
	c.timedOut = [3]bool{}
	c.current = c.first
	c.turnStart = c.now()
	c.running = true

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	tick := c.tick
	c.mu.Unlock()

	go c.run(ctx, done, tick)
}

func (c *Clock) run(ctx context.Context, done chan struct{}, tick time.Duration) {
	defer close(done)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.poll()
		}
	}
}

// Stop halts the ticker and freezes both players' time.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	if c.running {
		c.remaining[c.current] = c.remainingLocked(c.current)
		c.running = false
	}
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// SwitchTurn charges the elapsed time to the player on turn, credits the
// increment unless that player has already run out, and starts the other
// player's time.
func (c *Clock) SwitchTurn() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	mover := c.current
	c.remaining[mover] = c.remainingLocked(mover)
	if c.remaining[mover] > 0 {
		c.remaining[mover] += c.increment
	}
	c.current = mover.Opponent()
	c.turnStart = c.now()

	updates := []struct {
		colour chess.Colour
		left   time.Duration
	}{
		{chess.White, c.remainingLocked(chess.White)},
		{chess.Black, c.remainingLocked(chess.Black)},
	}
	listeners := append([]func(chess.Colour, time.Duration){}, c.onUpdate...)
	c.mu.Unlock()

	for _, u := range updates {
		for _, fn := range listeners {
			fn(u.colour, u.left)
		}
	}
}

// Current returns the player whose time is running.
func (c *Clock) Current() chess.Colour {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Remaining returns colour's time left, never negative.
func (c *Clock) Remaining(colour chess.Colour) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked(colour)
}

func (c *Clock) remainingLocked(colour chess.Colour) time.Duration {
	left := c.remaining[colour]
	if c.running && colour == c.current {
		left -= c.now().Sub(c.turnStart)
	}
	if left < 0 {
		return 0
	}
	return left
}

// IsCurrentPlayerOutOfTime reports whether the player on turn has no time
// left. Untimed clocks never run out.
func (c *Clock) IsCurrentPlayerOutOfTime() bool {
	if c.untimed() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked(c.current) <= 0
}

// poll publishes the running player's time and fires their timeout once.
func (c *Clock) poll() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	colour := c.current
	left := c.remainingLocked(colour)
	var timeouts []func(chess.Colour)
	if left <= 0 && !c.timedOut[colour] {
		c.timedOut[colour] = true
		timeouts = append(timeouts, c.onTimeout...)
	}
	updates := append([]func(chess.Colour, time.Duration){}, c.onUpdate...)
	c.mu.Unlock()

	for _, fn := range updates {
		fn(colour, left)
	}
	for _, fn := range timeouts {
		fn(colour)
	}
}
