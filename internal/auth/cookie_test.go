package auth_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/internal/auth"
)

var _ = Describe("Session cookie", func() {
	opts := auth.CookieOptions{Name: "access_token", TTL: 10 * time.Minute}

	cookieFrom := func(handler fiber.Handler) *http.Cookie {
		app := fiber.New()
		app.Get("/", handler)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		cookies := resp.Cookies()
		Expect(cookies).To(HaveLen(1))
		return cookies[0]
	}

	It("is http-only, lax and lives for the session", func() {
		cookie := cookieFrom(func(c *fiber.Ctx) error {
			auth.SetSessionCookie(c, opts, "signed-token")
			return c.SendStatus(fiber.StatusOK)
		})
		Expect(cookie.Name).To(Equal("access_token"))
		Expect(cookie.Value).To(Equal("signed-token"))
		Expect(cookie.MaxAge).To(Equal(600))
		Expect(cookie.HttpOnly).To(BeTrue())
		Expect(cookie.SameSite).To(Equal(http.SameSiteLaxMode))
		Expect(cookie.Path).To(Equal("/"))
	})

	It("clears with an empty, expired value", func() {
		cookie := cookieFrom(func(c *fiber.Ctx) error {
			auth.ClearSessionCookie(c, opts)
			return c.SendStatus(fiber.StatusOK)
		})
		Expect(cookie.Value).To(BeEmpty())
		Expect(cookie.Expires.Before(time.Now())).To(BeTrue())
	})
})
