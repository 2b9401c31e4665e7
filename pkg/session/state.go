package session

import (
	"sync"
	"time"
)

// Sign-out reasons reported in Snapshot.Reason.
const (
	ReasonSignedOut    = "signed_out"
	ReasonExpired      = "expired"
	ReasonUnauthorized = "unauthorized"
)

// Profile is the signed-in staff member as returned by sign-in.
type Profile struct {
	ID        string   `json:"id"`
	StaffID   string   `json:"staffId"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

// Snapshot is a copy of the session state at one instant.
type Snapshot struct {
	SignedIn  bool
	Profile   Profile
	ExpiresAt time.Time
	// Reason is set after a sign-out.
	Reason string
}

// State is the session context shared by the keeper and the UI.
type State struct {
	mu        sync.Mutex
	current   Snapshot
	listeners []func(Snapshot)
}

// NewState returns a signed-out state.
func NewState() *State {
	return &State{}
}

// SignIn records a new session.
func (s *State) SignIn(profile Profile, expiresAt time.Time) {
	s.update(func(Snapshot) (Snapshot, bool) {
		return Snapshot{SignedIn: true, Profile: profile, ExpiresAt: expiresAt}, true
	})
}

// Refreshed moves the expiry of the current session. It is ignored when signed out.
func (s *State) Refreshed(expiresAt time.Time) {
	s.update(func(cur Snapshot) (Snapshot, bool) {
		if !cur.SignedIn {
			return cur, false
		}
		cur.ExpiresAt = expiresAt
		return cur, true
	})
}

// SignOut clears the session. Repeated calls leave the first reason in place and report false.
func (s *State) SignOut(reason string) bool {
	return s.update(func(cur Snapshot) (Snapshot, bool) {
		if !cur.SignedIn {
			return cur, false
		}
		return Snapshot{Reason: reason}, true
	})
}

// Current returns a snapshot of the session.
func (s *State) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// OnChange registers fn to run after every change, outside the state lock.
func (s *State) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// update applies fn under the lock and notifies listeners when it reports a change.
func (s *State) update(fn func(Snapshot) (Snapshot, bool)) bool {
	s.mu.Lock()
	next, changed := fn(s.current)
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.current = next
	listeners := append([]func(Snapshot){}, s.listeners...)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
	return true
}
