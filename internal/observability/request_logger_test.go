package observability_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agate-ltd/agency-crm/internal/observability"
)

var _ = Describe("RequestLogger", func() {
	It("logs by status and records route metrics", func() {
		core, logs := observer.New(zap.DebugLevel)
		metrics := observability.NewMetrics()

		app := fiber.New()
		app.Use(observability.RequestLogger(zap.New(core), metrics))
		app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })
		app.Get("/missing", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNotFound) })

		for _, path := range []string{"/ok", "/ok", "/missing"} {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
			Expect(err).NotTo(HaveOccurred())
			resp.Body.Close()
		}

		Expect(logs.FilterLevelExact(zapcore.InfoLevel).Len()).To(Equal(2))
		Expect(logs.FilterLevelExact(zapcore.WarnLevel).Len()).To(Equal(1))

		snap := metrics.Snapshot()
		Expect(snap.Requests).To(HaveKeyWithValue("/ok|GET|200", HaveField("Count", int64(2))))
		Expect(snap.Requests).To(HaveKey("/missing|GET|404"))
	})
})

var _ = Describe("Metrics", func() {
	It("tolerates a nil receiver", func() {
		var metrics *observability.Metrics
		metrics.RecordRequest("/x", "GET", 200, time.Millisecond)
		metrics.RecordError("/x", "GET", "NOT_FOUND")
		Expect(metrics.Snapshot().Requests).To(BeNil())
	})

	It("counts errors per code", func() {
		metrics := observability.NewMetrics()
		metrics.RecordError("/api/clients/create-client", "POST", "VALIDATION_FAILED")
		metrics.RecordError("/api/clients/create-client", "POST", "VALIDATION_FAILED")
		Expect(metrics.Snapshot().Errors).To(HaveKeyWithValue("/api/clients/create-client|POST|VALIDATION_FAILED", int64(2)))
	})
})
