package app

import (
	"context"
	"time"

	"github.com/tonindexer/gasused/internal/core/aggregate"
)

type QueryConfig struct {
	Fetcher FetcherService

	// CacheSize is the number of transaction histories kept in memory, zero disables caching.
	CacheSize int
	CacheTTL  time.Duration
}

type QueryService interface {
	GetFees(ctx context.Context, req *aggregate.FeesReq) (*aggregate.FeesRes, error)
}
