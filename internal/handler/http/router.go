package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ledgerline/books-backend-go/internal/config"
	"github.com/ledgerline/books-backend-go/internal/handler/http/middleware"
	"github.com/ledgerline/books-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	advanceHandler AdvanceHandler,
	salaryHandler SalaryHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ledgerline-books"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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
		// Requires authentication; tokens are issued by the platform's
		// identity service.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/advances", func(r chi.Router) {
				r.Post("/", advanceHandler.Create)
				r.Get("/", advanceHandler.List)
				r.Get("/{id}", advanceHandler.Get)
				r.Put("/{id}", advanceHandler.Update)
				r.Delete("/{id}", advanceHandler.Delete)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Post("/generate", salaryHandler.Generate)
				r.Get("/", salaryHandler.List)
				r.Get("/{id}", salaryHandler.Get)
				r.Put("/{id}", salaryHandler.Update)
				r.Post("/{id}/pay", salaryHandler.MarkPaid)
				r.Delete("/{id}", salaryHandler.Delete)
			})

			r.Get("/employees", employeeHandler.ListActive)
		})
	})
	return r
}
