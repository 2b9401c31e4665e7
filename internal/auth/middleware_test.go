package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agate-ltd/agency-crm/internal/auth"
	"github.com/agate-ltd/agency-crm/internal/domain"
	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

type errorBody struct {
	Message string `json:"message"`
}

func newGuardedApp(tokens *auth.TokenManager, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
		},
	})
	handlers := []fiber.Handler{auth.NewAuthMiddleware(tokens, "access_token").Handle}
	handlers = append(handlers, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		claims, _ := auth.ClaimsFromContext(c)
		return c.JSON(fiber.Map{"staffId": claims.StaffID})
	})
	app.Get("/protected", handlers...)
	return app
}

func call(app *fiber.App, token string) (int, string) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}
	resp, err := app.Test(req)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()

	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body.Message
}

var _ = Describe("AuthMiddleware", func() {
	var (
		now    time.Time
		tokens *auth.TokenManager
		app    *fiber.App
	)

	BeforeEach(func() {
		now = time.Now()
		var err error
		tokens, err = auth.NewTokenManager("test-secret", 10*time.Minute)
		Expect(err).NotTo(HaveOccurred())
		tokens.WithClock(func() time.Time { return now })
		app = newGuardedApp(tokens)
	})

	It("asks for sign-in when the cookie is missing", func() {
		status, msg := call(app, "")
		Expect(status).To(Equal(http.StatusUnauthorized))
		Expect(msg).To(Equal(auth.MsgNoCredential))
	})

	It("reports an expired session", func() {
		session, err := tokens.Issue("id-1", "123456", domain.RoleSet(domain.RoleAdmin))
		Expect(err).NotTo(HaveOccurred())
		now = now.Add(11 * time.Minute)

		status, msg := call(app, session.Token)
		Expect(status).To(Equal(http.StatusUnauthorized))
		Expect(msg).To(Equal(auth.MsgSessionExpired))
	})

	It("reports an invalid token", func() {
		status, msg := call(app, "garbage.token.value")
		Expect(status).To(Equal(http.StatusUnauthorized))
		Expect(msg).To(Equal(auth.MsgInvalidToken))
	})

	It("passes valid sessions through with their claims", func() {
		session, err := tokens.Issue("id-1", "123456", domain.RoleSet(domain.RoleWaiter))
		Expect(err).NotTo(HaveOccurred())

		status, _ := call(app, session.Token)
		Expect(status).To(Equal(http.StatusOK))
	})

	Context("with a role gate", func() {
		BeforeEach(func() {
			app = newGuardedApp(tokens, auth.RequireAdminOrManager())
		})

		It("forbids staff without the role", func() {
			session, err := tokens.Issue("id-1", "123456", domain.RoleSet(domain.RoleWaiter))
			Expect(err).NotTo(HaveOccurred())

			status, msg := call(app, session.Token)
			Expect(status).To(Equal(http.StatusForbidden))
			Expect(msg).To(Equal("Access denied - Admin or Manager privileges required"))
		})

		It("admits managers", func() {
			session, err := tokens.Issue("id-1", "123456", domain.RoleSet(domain.RoleManager))
			Expect(err).NotTo(HaveOccurred())

			status, _ := call(app, session.Token)
			Expect(status).To(Equal(http.StatusOK))
		})
	})
})
