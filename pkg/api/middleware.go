package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	apiErrs "github.com/wavesplatform/gomint/pkg/api/errors"
	"github.com/wavesplatform/gomint/pkg/proto"
)

const (
	// CallerHeader carries the base58 address of the account making the call.
	CallerHeader = "X-Caller-Address"
	// APIKeyHeader authorizes administrative routes.
	APIKeyHeader = "X-API-Key"
)

type callerKey struct{}

// CreateLoggerMiddleware creates a middleware that logs the start and end of each request, along
// with some useful data about what was requested, what the response status was,
// and how long it took to return.
func CreateLoggerMiddleware(l *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww, ok := w.(middleware.WrapResponseWriter)
			if !ok {
				ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			}

			t1 := time.Now()
			defer func() {
				l.Info("ServedHttpRequest",
					zap.String("proto", r.Proto),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("caller", r.Header.Get(CallerHeader)),
					zap.Duration("lat", time.Since(t1)),
					zap.Int("status", ww.Status()),
					zap.Int("size", ww.BytesWritten()),
					zap.String("request_id", middleware.GetReqID(r.Context())))
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

func CreateHeadersMiddleware(headers map[string]string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, v := range headers {
				w.Header().Set(k, v)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func JsonContentTypeMiddleware(next http.Handler) http.Handler {
	return CreateHeadersMiddleware(map[string]string{
		"Content-Type": "application/json",
	})(next)
}

func createCheckAuthMiddleware(app *App, errorHandler HandleErrorFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(APIKeyHeader)
			err := app.checkAuth(apiKey)
			if err != nil {
				errorHandler(w, r, err)
			} else {
				next.ServeHTTP(w, r)
			}
		})
	}
}

// createCallerMiddleware requires a valid caller address and puts it into the request context.
func createCallerMiddleware(errorHandler HandleErrorFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := r.Header.Get(CallerHeader)
			if s == "" {
				errorHandler(w, r, apiErrs.ErrCallerRequired)
				return
			}
			caller, err := parseAddress(s)
			if err != nil {
				errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
		})
	}
}

func callerFromContext(ctx context.Context) proto.Address {
	caller, _ := ctx.Value(callerKey{}).(proto.Address)
	return caller
}
