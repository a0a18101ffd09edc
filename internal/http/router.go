package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tpcell/internal/http/handlers"
	"tpcell/internal/http/metrics"
	httpmw "tpcell/internal/http/middleware"
	"tpcell/internal/security"
)

type RouterDependencies struct {
	StudentHandler *handlers.StudentHandler
	StatusHandler  *handlers.StatusHandler
	PostingHandler *handlers.PostingHandler
	AdminHandler   *handlers.AdminHandler
	MetricsHandler *handlers.MetricsHandler
	AuthMiddleware *httpmw.AuthMiddleware
	Metrics        *metrics.Collector
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 40 << 20 // multipart bodies carry document scans

func NewRouter(deps RouterDependencies) http.Handler {
	r := &Router{deps: deps}
	return httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(deps.Logger),
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover(deps.Logger),
		httpmw.Metrics(deps.Metrics),
		httpmw.Timeout(deps.RequestTimeout),
	)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/students/me":
			r.authenticated(r.deps.StudentHandler.Me).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/students/submit":
			r.withRole(r.deps.StudentHandler.Submit, security.RoleStudent).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPatch && path == "/students/modify":
			r.withRole(r.deps.StudentHandler.Modify, security.RoleStudent).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/students/profile-pic-url":
			r.authenticated(r.deps.StudentHandler.ProfilePicURL).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/students/placed-status":
			r.authenticated(r.deps.StatusHandler.PlacedStatus).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/students/intern-status-2":
			r.authenticated(r.deps.StatusHandler.InternStatus2).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/students/intern-status-6":
			r.authenticated(r.deps.StatusHandler.InternStatus6).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/students/fte-status":
			r.authenticated(r.deps.StatusHandler.FTEStatus).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPut && path == "/admin/students/placed-status":
			r.withRole(r.deps.StatusHandler.SetPlacedStatus, security.RoleAdmin, security.RoleCoordinator).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/admin/settings":
			r.withRole(r.deps.AdminHandler.GetSettings, security.RoleAdmin).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPut && path == "/admin/settings":
			r.withRole(r.deps.AdminHandler.UpdateSettings, security.RoleAdmin).ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/admin/postings":
			r.withRole(r.deps.PostingHandler.Create, security.RoleAdmin, security.RoleCoordinator).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && path == "/postings":
			r.authenticated(r.deps.PostingHandler.List).ServeHTTP(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/postings/"):
			r.authenticated(r.deps.PostingHandler.Get).ServeHTTP(w, req)
			return
		default:
			http.NotFound(w, req)
		}
	})
}

func (r *Router) authenticated(handler http.HandlerFunc) http.Handler {
	return r.deps.AuthMiddleware.Authenticate(handler)
}

func (r *Router) withRole(handler http.HandlerFunc, roles ...string) http.Handler {
	return r.deps.AuthMiddleware.Authenticate(httpmw.RequireRole(roles...)(handler))
}
