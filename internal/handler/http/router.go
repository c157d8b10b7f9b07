package http

import (
	"log/slog"
	"os"

	"github.com/clocklabs/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/clocklabs/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(jwtService jwt.Service, authHandler AuthHandler, attendanceHandler AttendanceHandler, kioskHandler KioskHandler, exportHandler ExportHandler, artifactHandler ArtifactHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
		// Badge ids travel in kiosk punch bodies; never log request bodies.
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Signed artifact links; the path prefix must line up with
	// STORAGE_BASE_URL.
	r.Get("/uploads/*", artifactHandler.Serve)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/toggle", attendanceHandler.Toggle)
				r.Post("/break", attendanceHandler.ToggleBreak)
				r.Get("/me", attendanceHandler.ListMine)
			})

			// Kiosk terminals run under an operator account
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/kiosk/punch", kioskHandler.Punch)
			})

			r.Route("/exports", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/", exportHandler.Create)
				r.Get("/{jobID}", exportHandler.Status)
			})
		})
	})
	return r
}
