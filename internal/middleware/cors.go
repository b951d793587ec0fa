package middleware

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// DefaultAllowedOrigins are the front-ends permitted to call the API.
var DefaultAllowedOrigins = []string{
	"https://frontend-seven-omega-51.vercel.app",
	"https://pratik-xi.vercel.app",
	"http://localhost:5500",
	"http://127.0.0.1:5500",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// CORS rejects requests whose Origin header is set but not in allowed, and
// writes CORS headers for the rest. Matching is exact string equality.
func CORS(allowed []string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}
	isAllowed := func(origin string) bool {
		_, ok := set[origin]
		return ok
	}

	headers := cors.New(cors.Options{
		AllowOriginFunc: isAllowed,
		AllowedMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:  []string{"Content-Type", "X-Requested-With"},
		MaxAge:          3600,
	})

	return func(next http.Handler) http.Handler {
		withHeaders := headers.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && !isAllowed(origin) {
				zerolog.Ctx(r.Context()).Warn().Str("origin", origin).Msg("origin not allowed")
				utils.RespondError(w, r, http.StatusForbidden, "Not allowed by CORS")
				return
			}
			withHeaders.ServeHTTP(w, r)
		})
	}
}
