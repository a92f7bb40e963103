package router

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/account"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/category"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/notify"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/session"
	"github.com/ovaphlow/pitchfork/service-couple-finance/internal/setting"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
// Bodies are never logged.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			// ensure status is set
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			// only over TLS
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			// session-bearing responses must not be cached by intermediaries
			w.Header().Set("Cache-Control", "no-store")

			next.ServeHTTP(w, r)
		})
	}
}

// Deps are the process-wide collaborators the routes are built from.
type Deps struct {
	DB        *sqlx.DB
	IDs       account.IDSource
	Sessions  *session.Manager
	Publisher notify.Publisher
	Account   account.Config
	// Hasher overrides the bcrypt hasher; tests use a cheaper cost.
	Hasher account.PasswordHasher
}

// RegisterRoutes mounts HTTP handlers on a standard library http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, deps Deps) http.Handler {
	mux := http.NewServeMux()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := newHTTPMetrics(reg)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.DB.PingContext(r.Context()); err != nil {
			logger.Warnw("health check: db ping failed", "err", err)
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// account routes
	accountSvc := account.NewService(deps.DB, deps.Hasher)
	provisioner := account.NewProvisioner(account.NewSQLStore(deps.DB), deps.Hasher, deps.IDs, deps.Publisher, logger, deps.Account)
	accountHandler := account.NewHandler(provisioner, accountSvc, deps.Sessions, logger, reg)
	mux.HandleFunc("POST /api/auth/register", accountHandler.Register)
	mux.HandleFunc("POST /api/auth/login", accountHandler.Login)

	requireAuth := session.RequireAuth(deps.Sessions)
	mux.Handle("GET /api/me", requireAuth(http.HandlerFunc(accountHandler.Me)))

	// setting routes
	settingHandler := setting.NewHandler(setting.NewService(deps.DB, accountSvc), logger)
	mux.Handle("GET /api/settings", requireAuth(http.HandlerFunc(settingHandler.Get)))

	// category routes
	categoryHandler := category.NewHandler(deps.DB, logger)
	mux.Handle("GET /api/categories", requireAuth(http.HandlerFunc(categoryHandler.List)))

	// wrap with security headers middleware then logging middleware
	handler := LoggingMiddleware(logger)(metrics.middleware(SecurityHeadersMiddleware()(mux)))
	return handler
}
