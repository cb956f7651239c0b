package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tonindexer/gasused/internal/core"
)

const DefaultPageSize = 200

// ExplorerAPI fetches a single page of account transactions.
type ExplorerAPI interface {
	AccountTransactions(ctx context.Context, req *core.TransactionPageReq) ([]*core.Transaction, error)
}

type FetcherConfig struct {
	API ExplorerAPI

	PageSize int // DefaultPageSize if zero

	// MaxPages stops pagination with core.ErrPageLimit
	// after that many non-empty pages. Zero means no limit.
	MaxPages int
}

func TimeTrack(start time.Time, fun string, args ...any) {
	elapsed := float64(time.Since(start)) / 1e9
	if elapsed < 0.1 {
		return
	}
	log.Debug().Str("func", fmt.Sprintf(fun, args...)).Float64("elapsed", elapsed).Msg("timer")
}

type FetcherService interface {
	// FetchAll returns the whole transaction history of the address, newest first.
	FetchAll(ctx context.Context, address string) ([]*core.Transaction, error)
}
