package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sanadhr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/sanadhr/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	logger *slog.Logger,
	jwtService jwt.Service,
	rateLimiter *middleware.RateLimiter,
	payrollHandler PayrollHandler,
	eosHandler EOSHandler,
	gosiHandler GOSIHandler,
	wpsHandler WPSHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Everything requires authentication; tokens come from the identity
		// provider upstream of this engine.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/payroll", func(r chi.Router) {
				// Calculation endpoints are expensive; rate-limit them.
				r.Group(func(r chi.Router) {
					r.Use(rateLimiter.Handler)
					r.Post("/calculate", payrollHandler.Calculate)
					r.Post("/ramadan-adjustments", payrollHandler.ApplyRamadanAdjustments)
				})

				r.Post("/overtime", payrollHandler.CalculateOvertime)
				r.Post("/leaves", leaveHandler.Entitlement)
				r.Post("/eos", eosHandler.Calculate)

				r.Route("/runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Get("/{id}", payrollHandler.GetRun)
					r.Get("/{id}/items", payrollHandler.GetRunItems)
				})

				r.Route("/eos-calculations", func(r chi.Router) {
					r.Get("/{id}", eosHandler.GetCalculation)
					r.Get("/employee/{employeeID}", eosHandler.ListByEmployee)
				})
			})

			r.Route("/gosi", func(r chi.Router) {
				r.Post("/sync", gosiHandler.Sync)
			})

			r.Route("/wps", func(r chi.Router) {
				r.Post("/generate", wpsHandler.Generate)
				r.Get("/submissions/{id}", wpsHandler.GetSubmission)
			})
		})
	})

	return r
}
