package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieOptions describes the session cookie contract.
type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// SetSessionCookie writes the token as an HTTP-only, SameSite=Lax cookie living for the session TTL.
func SetSessionCookie(c *fiber.Ctx, opts CookieOptions, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.TTL / time.Second),
		HTTPOnly: true,
		Secure:   opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the cookie with an empty, already expired value.
func ClearSessionCookie(c *fiber.Ctx, opts CookieOptions) {
	c.Cookie(&fiber.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		HTTPOnly: true,
		Secure:   opts.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
