package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ers-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries everything the HTTP surface is assembled from.
// Metrics is optional.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	JWTService     jwt.Service
	AuthService    auth.AuthService
	LoginLimiter   *middleware.RateLimiter
	Metrics        *metrics.Metrics

	AuthHandler          AuthHandler
	UserHandler          UserHandler
	ReimbursementHandler ReimbursementHandler
}

func NewRouter(opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	verifier := jwtauth.Verify(opts.JWTService.JWTAuth(), jwt.TokenFromSessionCookie, jwtauth.TokenFromHeader)
	sessionRequired := middleware.SessionRequired(opts.JWTService, opts.AuthService)

	r.Group(func(r chi.Router) {
		r.Use(verifier, sessionRequired)
		r.Get("/uploads/*", opts.ReimbursementHandler.ServeReceipt)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentEncoding("application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Use(verifier)

			r.With(opts.LoginLimiter.Handler).Post("/", opts.AuthHandler.Login)
			r.Get("/", opts.AuthHandler.Logout)
			r.With(sessionRequired, middleware.RequirePermission(user.PermissionViewOwnProfile)).Get("/me", opts.AuthHandler.Me)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", opts.UserHandler.Register)

			r.Group(func(r chi.Router) {
				r.Use(verifier, sessionRequired)
				r.Use(middleware.RequireAdmin, middleware.RequirePermission(user.PermissionUserManage))

				r.Get("/", opts.UserHandler.List)
				r.Get("/{id}", opts.UserHandler.Get)
				r.Patch("/{id}", opts.UserHandler.Update)
				r.Delete("/{id}", opts.UserHandler.Delete)
			})
		})

		// Requires authentication
		r.Route("/reimbursements", func(r chi.Router) {
			r.Use(verifier, sessionRequired)

			r.With(middleware.RequirePermission(user.PermissionReimbursementCreate)).Post("/", opts.ReimbursementHandler.Create)
			r.With(middleware.RequirePermission(user.PermissionReimbursementCreate)).Post("/receipts", opts.ReimbursementHandler.UploadReceipt)
			r.With(middleware.RequirePermission(user.PermissionReimbursementViewOwn)).Get("/mine", opts.ReimbursementHandler.Mine)
			r.Get("/{id}", opts.ReimbursementHandler.Get)
			r.Patch("/{id}", opts.ReimbursementHandler.Update)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)

				r.Get("/", opts.ReimbursementHandler.List)
				r.Get("/authors/{id}", opts.ReimbursementHandler.ListByAuthor)
				r.With(middleware.RequirePermission(user.PermissionReimbursementResolve)).Patch("/{id}/resolve", opts.ReimbursementHandler.Resolve)
			})

			r.With(middleware.RequirePermission(user.PermissionReimbursementDelete)).Delete("/{id}", opts.ReimbursementHandler.Delete)
		})
	})

	return r
}
