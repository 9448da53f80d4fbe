package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-news-discussions/internal/http/handlers"
	"github.com/pribylovaa/go-news-discussions/internal/http/middleware"
	"github.com/pribylovaa/go-news-discussions/internal/metrics"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	Auth     middleware.AuthOptions
	Metrics  *metrics.Metrics
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Discussions, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),          // до логирования: id попадает в request-scoped логгер
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
		middleware.Authenticate(opts.Auth), // без токена запрос гостевой
	)

	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// чтение: гость или пользователь
	r.Get("/items/{item_id}/comments", h.RenderThreadPage)
	r.Get("/items/{item_id}/threads/top", h.TopThreads)
	r.Get("/comments/{id}/permalink", h.ResolveCommentPermalink)
	r.Get("/comments/{id}/rollup", h.ThreadRollup)

	// изменения: только с токеном
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser())

		r.Post("/comments/{id}/vote", h.ToggleVote)
		r.Post("/comments/{id}/retract", h.RetractComment)
		r.Post("/comments/{id}/restore", h.RestoreComment)
		r.Put("/items/{item_id}/pin", h.SetPinnedComment)
	})
}
