package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrUnauthorized is returned by a Refresher when the server rejects the session.
var ErrUnauthorized = errors.New("session: unauthorized")

// Refresher asks the server for a fresh session and returns its absolute expiry.
type Refresher interface {
	Refresh(ctx context.Context) (time.Time, error)
}

// Options tune the keeper. Zero values take the defaults below; a negative
// Debounce stamps activity immediately.
type Options struct {
	PollInterval     time.Duration
	ActivityWindow   time.Duration
	Cooldown         time.Duration
	RefreshThreshold time.Duration
	Debounce         time.Duration
	Clock            Clock
	Logger           *zap.Logger
}

const (
	DefaultPollInterval     = 5 * time.Second
	DefaultActivityWindow   = 60 * time.Second
	DefaultCooldown         = 15 * time.Second
	DefaultRefreshThreshold = 20 * time.Second
	DefaultDebounce         = time.Second
)

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.ActivityWindow <= 0 {
		o.ActivityWindow = DefaultActivityWindow
	}
	if o.Cooldown <= 0 {
		o.Cooldown = DefaultCooldown
	}
	if o.RefreshThreshold <= 0 {
		o.RefreshThreshold = DefaultRefreshThreshold
	}
	switch {
	case o.Debounce == 0:
		o.Debounce = DefaultDebounce
	case o.Debounce < 0:
		// negative disables debouncing
		o.Debounce = 0
	}
	if o.Clock == nil {
		o.Clock = SystemClock()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Keeper refreshes the session while the user is active and signs it out at expiry.
type Keeper struct {
	state     *State
	refresher Refresher
	opts      Options

	mu            sync.Mutex
	started       bool
	lastActivity  time.Time
	lastRefresh   time.Time
	refreshing    bool
	debounceTimer Timer
	expiryTimer   Timer
}

// NewKeeper builds a keeper over state.
func NewKeeper(state *State, refresher Refresher, opts Options) *Keeper {
	return &Keeper{state: state, refresher: refresher, opts: opts.withDefaults()}
}

// MarkActivity records a user interaction. Bursts within the debounce interval
// collapse into one update stamped when the interval ends.
func (k *Keeper) MarkActivity() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.opts.Debounce == 0 {
		k.lastActivity = k.opts.Clock.Now()
		return
	}
	if k.debounceTimer != nil {
		k.debounceTimer.Stop()
	}
	k.debounceTimer = k.opts.Clock.AfterFunc(k.opts.Debounce, func() {
		k.mu.Lock()
		k.lastActivity = k.opts.Clock.Now()
		k.debounceTimer = nil
		k.mu.Unlock()
	})
}

// LastActivity returns the last recorded interaction, zero if none.
func (k *Keeper) LastActivity() time.Time {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.lastActivity
}

// Poll runs one scheduling decision: sign out if expired, refresh if due, otherwise nothing.
func (k *Keeper) Poll(ctx context.Context) {
	snap := k.state.Current()
	if !snap.SignedIn {
		return
	}
	now := k.opts.Clock.Now()
	if !now.Before(snap.ExpiresAt) {
		k.state.SignOut(ReasonExpired)
		return
	}

	k.mu.Lock()
	if !k.shouldRefresh(now, snap.ExpiresAt) {
		k.mu.Unlock()
		return
	}
	k.refreshing = true
	k.mu.Unlock()

	expiresAt, err := k.refresher.Refresh(ctx)

	k.mu.Lock()
	k.refreshing = false
	if err == nil {
		k.lastRefresh = now
	}
	k.mu.Unlock()

	switch {
	case err == nil:
		k.state.Refreshed(expiresAt)
	case errors.Is(err, ErrUnauthorized):
		k.opts.Logger.Info("session rejected by server; signing out")
		k.state.SignOut(ReasonUnauthorized)
	default:
		k.opts.Logger.Debug("session refresh failed", zap.Error(err))
	}
}

// shouldRefresh must be called with k.mu held.
func (k *Keeper) shouldRefresh(now, expiresAt time.Time) bool {
	if k.refreshing || k.lastActivity.IsZero() {
		return false
	}
	if now.Sub(k.lastActivity) > k.opts.ActivityWindow {
		return false
	}
	if !k.lastRefresh.IsZero() && now.Sub(k.lastRefresh) < k.opts.Cooldown {
		return false
	}
	return expiresAt.Sub(now) <= k.opts.RefreshThreshold
}

// Resume is called when the UI returns to the foreground.
func (k *Keeper) Resume() {
	snap := k.state.Current()
	if snap.SignedIn && !k.opts.Clock.Now().Before(snap.ExpiresAt) {
		k.state.SignOut(ReasonExpired)
	}
}

// Start arms the expiry timer and keeps it in step with the state. It is idempotent.
func (k *Keeper) Start() {
	k.mu.Lock()
	if k.started {
		k.mu.Unlock()
		return
	}
	k.started = true
	k.mu.Unlock()

	k.state.OnChange(k.onChange)
	k.onChange(k.state.Current())
}

// Run starts the keeper and polls until ctx is done.
func (k *Keeper) Run(ctx context.Context) {
	k.Start()
	ticker := k.opts.Clock.NewTicker(k.opts.PollInterval)
	defer ticker.Stop()
	defer k.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			k.Poll(ctx)
		}
	}
}

func (k *Keeper) onChange(snap Snapshot) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.expiryTimer != nil {
		k.expiryTimer.Stop()
		k.expiryTimer = nil
	}
	if !snap.SignedIn {
		k.lastRefresh = time.Time{}
		return
	}

	expiresAt := snap.ExpiresAt
	delay := expiresAt.Sub(k.opts.Clock.Now())
	if delay < 0 {
		delay = 0
	}
	k.expiryTimer = k.opts.Clock.AfterFunc(delay, func() { k.expire(expiresAt) })
}

// expire signs out if the session still ends at expiresAt and that instant has passed.
func (k *Keeper) expire(expiresAt time.Time) {
	snap := k.state.Current()
	if !snap.SignedIn || !snap.ExpiresAt.Equal(expiresAt) {
		return
	}
	if k.opts.Clock.Now().Before(expiresAt) {
		return
	}
	k.state.SignOut(ReasonExpired)
}

func (k *Keeper) stopTimers() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.expiryTimer != nil {
		k.expiryTimer.Stop()
		k.expiryTimer = nil
	}
	if k.debounceTimer != nil {
		k.debounceTimer.Stop()
		k.debounceTimer = nil
	}
}
