package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/folio/backend/internal/handler/admin"
	"github.com/zhouzirui/folio/backend/internal/handler/ai"
	"github.com/zhouzirui/folio/backend/internal/handler/contact"
	"github.com/zhouzirui/folio/backend/internal/handler/page"
	"github.com/zhouzirui/folio/backend/internal/logging"
	middlewarePkg "github.com/zhouzirui/folio/backend/internal/middleware"
	"github.com/zhouzirui/folio/backend/internal/model/message"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// Deps carries the long-lived services the routes are built from.
type Deps struct {
	Logger         zerolog.Logger
	Completer      ai.Completer
	Store          message.Store
	AdminPassword  string
	AllowedOrigins []string
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	origins := append([]string(nil), middlewarePkg.DefaultAllowedOrigins...)
	origins = append(origins, deps.AllowedOrigins...)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(origins))

	page.New().RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		ai.New(deps.Completer).RegisterRoutes(api)
		contact.New(deps.Store).RegisterRoutes(api)
		admin.New(deps.Store, deps.AdminPassword).RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := deps.Store.Ping(ctx); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("store ping failed")
				utils.RespondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
			utils.RespondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
