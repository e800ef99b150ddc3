package api

import (
	"net/http"
	"time"
)

const (
	DefaultMaxConnections         = 128
	DefaultRateLimiterStorageSize = 64 * 1024 // 64 KB
)

type RunOptions struct {
	// RateLimiterOpts limits issuance requests, nil disables the limiter.
	RateLimiterOpts      *RateLimiterOptions
	LogHttpRequestOpts   bool
	CollectMetrics       bool
	UseRealIPMiddleware  bool
	RequestIDMiddleware  bool
	EnableHeartbeatRoute bool
	EnableMetricsRoute   bool
	// RouteNotFoundHandler overrides the JSON not found response.
	RouteNotFoundHandler func(w http.ResponseWriter, r *http.Request)
	MaxConnections       int
}

type RateLimiterOptions struct {
	MemoryCacheSize      int
	MaxRequestsPerSecond int
	MaxBurst             int
}

func DefaultRunOptions() *RunOptions {
	return &RunOptions{
		RateLimiterOpts: &RateLimiterOptions{
			MemoryCacheSize:      DefaultRateLimiterStorageSize,
			MaxRequestsPerSecond: 1,
			MaxBurst:             1,
		},
		LogHttpRequestOpts:   false,
		EnableHeartbeatRoute: true,
		EnableMetricsRoute:   true,
		UseRealIPMiddleware:  true,
		RequestIDMiddleware:  true,
		CollectMetrics:       true,
		MaxConnections: DefaultMaxConnections,
	}
}

const (
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 5 * time.Second
)
