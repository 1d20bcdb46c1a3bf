package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/openpair/roundrobin/handlers"
	"github.com/openpair/roundrobin/middleware"
)

type RouterConfig struct {
	JWTSecret          string
	CORSAllowedOrigins []string

	AuthHandler       *handlers.AuthHandler
	TournamentHandler *handlers.TournamentHandler
}

func InitRoutes(cfg RouterConfig) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/register", cfg.AuthHandler.Register)
	router.Post("/auth/login", cfg.AuthHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", cfg.TournamentHandler.List)
		r.Get("/{slug}", cfg.TournamentHandler.GetBySlug)

		// Защищённые маршруты только для аутентифицированных пользователей
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate([]byte(cfg.JWTSecret)))

			r.Post("/", cfg.TournamentHandler.Create)
			r.Delete("/{slug}", cfg.TournamentHandler.Delete)
			r.Put("/{slug}/logo", cfg.TournamentHandler.UploadLogo)
		})
	})

	return router
}
