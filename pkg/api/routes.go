package api

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apiErrs "github.com/wavesplatform/gomint/pkg/api/errors"
)

type HandleErrorFunc func(w http.ResponseWriter, r *http.Request, err error)
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

func toHTTPHandlerFunc(handler HandlerFunc, errorHandler HandleErrorFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		err := handler(writer, request)
		if err != nil {
			errorHandler(writer, request, err)
		}
	}
}

func (a *MintApi) routes(opts *RunOptions) (chi.Router, error) {
	r := chi.NewRouter()

	if opts.UseRealIPMiddleware {
		// for nginx/haproxy specific headers
		r.Use(middleware.RealIP)
	}
	if opts.RequestIDMiddleware {
		r.Use(middleware.RequestID)
	}
	if opts.MaxConnections > 0 {
		r.Use(middleware.Throttle(opts.MaxConnections))
	}
	if opts.CollectMetrics {
		r.Use(metricsMiddleware)
	}
	if opts.LogHttpRequestOpts {
		r.Use(CreateLoggerMiddleware(a.logger))
	}

	errHandler := NewErrorHandler(a.logger)
	if opts.RouteNotFoundHandler != nil {
		r.NotFound(opts.RouteNotFoundHandler)
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			errHandler.Handle(w, r, apiErrs.ErrRouteNotFound)
		})
	}
	checkAuthMiddleware := createCheckAuthMiddleware(a.app, errHandler.Handle)
	callerMiddleware := createCallerMiddleware(errHandler.Handle)

	wrapper := func(handlerFunc HandlerFunc) http.HandlerFunc {
		return toHTTPHandlerFunc(handlerFunc, errHandler.Handle)
	}

	if opts.EnableHeartbeatRoute {
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte("OK")); err != nil {
				a.logger.Error("Can't write 'OK' to ResponseWriter", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
			}
		})
	}
	if opts.EnableMetricsRoute {
		r.Handle("/metrics", promhttp.Handler())
	}

	issueRoutes := r.With(JsonContentTypeMiddleware, callerMiddleware)
	if opts.RateLimiterOpts != nil {
		limit, err := newIssueLimiter(opts.RateLimiterOpts, errHandler.Handle)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		issueRoutes = issueRoutes.With(limit)
	}
	adminRoutes := r.With(JsonContentTypeMiddleware, checkAuthMiddleware, callerMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(JsonContentTypeMiddleware)
		r.Get("/collection", wrapper(a.Collection))
		r.Get("/supply", wrapper(a.Supply))
		r.Get("/assets/{id}", wrapper(a.Asset))
		r.Get("/accounts/{address}/assets", wrapper(a.AccountAssets))
	})

	issueRoutes.Post("/assets", wrapper(a.Issue))

	adminRoutes.Post("/assets/batch", wrapper(a.IssueBatch))
	adminRoutes.Put("/price", wrapper(a.SetPrice))
	adminRoutes.Put("/paused", wrapper(a.SetPaused))
	adminRoutes.Put("/metadata-base", wrapper(a.SetMetadataBase))
	adminRoutes.Post("/withdraw", wrapper(a.Withdraw))

	return r, nil
}
