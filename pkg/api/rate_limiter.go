package api

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"

	apiErrs "github.com/wavesplatform/gomint/pkg/api/errors"
)

// newIssueLimiter limits paid issuance per remote address and caller with a GCRA quota.
// Refused requests get the JSON TooManyRequests error.
func newIssueLimiter(opts *RateLimiterOptions, errorHandler HandleErrorFunc) (func(http.Handler) http.Handler, error) {
	store, err := memstore.New(opts.MemoryCacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create rate limiter store of %d keys", opts.MemoryCacheSize)
	}
	quota := throttled.RateQuota{
		MaxRate:  throttled.PerSec(opts.MaxRequestsPerSecond),
		MaxBurst: opts.MaxBurst,
	}
	gcra, err := throttled.NewGCRARateLimiter(store, quota)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create issuance rate limiter")
	}
	limiter := throttled.HTTPRateLimiter{
		RateLimiter: gcra,
		VaryBy: &throttled.VaryBy{
			RemoteAddr: true,
			Headers:    []string{CallerHeader},
		},
		DeniedHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metricIssueThrottled.Inc()
			errorHandler(w, r, apiErrs.ErrTooManyRequests)
		}),
		Error: func(w http.ResponseWriter, r *http.Request, err error) {
			errorHandler(w, r, errors.Wrap(err, "issuance rate limiter failed"))
		},
	}
	return limiter.RateLimit, nil
}
