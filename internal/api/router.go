package api

import (
	"log/slog"
	"net/http"
	"time"
	"workout_api/internal/api/handler"
	"workout_api/internal/api/middleware"
	"workout_api/internal/app/service"
	"workout_api/internal/common/security"
	"workout_api/internal/observability"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authService *service.AuthService,
	workoutService *service.WorkoutService,
	tokens *security.TokenManager,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.RequestLogger(middleware.NewSlogFormatter(slog.Default())))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(observability.Instrument)

	// Only "Authorization: Bearer T" is honoured; jwtauth.Verifier would also
	// accept a "jwt" cookie. The verified token (or the verification error)
	// goes into the context for middleware.Authenticator.
	r.Use(jwtauth.Verify(tokens.JWTAuth(), jwtauth.TokenFromHeader))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handler.NewAuthHandler(authService)
	r.Route("/user", authHandler.RegisterRoutes)

	workoutHandler := handler.NewWorkoutHandler(workoutService)
	r.Route("/workouts", func(wr chi.Router) {
		wr.Use(middleware.Authenticator(authService))
		workoutHandler.RegisterRoutes(wr)
	})

	return r
}
