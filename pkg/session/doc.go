// Package session keeps a dashboard session alive while its user is active.
//
// State holds the signed-in profile and the absolute expiry reported by the
// server. Keeper polls on a fixed interval and asks a Refresher for a new
// expiry only when the user interacted recently, the last successful refresh is
// outside the cooldown, and the session is close to expiring. A timer armed
// at the expiry instant signs the session out locally; an explicit
// unauthorized answer from the server does the same immediately.
package session
