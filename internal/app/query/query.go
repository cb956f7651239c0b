package query

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tonindexer/gasused/internal/app"
	"github.com/tonindexer/gasused/internal/core"
	"github.com/tonindexer/gasused/internal/core/aggregate"
	"github.com/tonindexer/gasused/lru"
)

var _ app.QueryService = (*Service)(nil)

type Service struct {
	cfg *app.QueryConfig

	history *lru.Cache[string, []*core.Transaction]
}

func NewService(_ context.Context, cfg *app.QueryConfig) (*Service, error) {
	var s = new(Service)

	if cfg.Fetcher == nil {
		return nil, errors.Wrap(core.ErrInvalidArg, "no fetcher service")
	}

	s.cfg = cfg
	if cfg.CacheSize > 0 {
		s.history = lru.New[string, []*core.Transaction](cfg.CacheSize, cfg.CacheTTL)
	}

	return s, nil
}

func (s *Service) transactions(ctx context.Context, address string) ([]*core.Transaction, error) {
	if s.history != nil {
		if txs, ok := s.history.Get(address); ok {
			log.Debug().Str("address", address).Int("transactions", len(txs)).Msg("transaction history cache hit")
			return txs, nil
		}
	}

	txs, err := s.cfg.Fetcher.FetchAll(ctx, address)
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		s.history.Put(address, txs)
	}
	return txs, nil
}

// GetFees fetches the whole history of the contract and sums fees paid by the tracked addresses.
func (s *Service) GetFees(ctx context.Context, req *aggregate.FeesReq) (*aggregate.FeesRes, error) {
	if req.Contract == "" {
		return nil, errors.Wrap(core.ErrInvalidArg, "contract address is empty")
	}

	txs, err := s.transactions(ctx, req.Contract)
	if err != nil {
		return nil, err
	}

	a := aggregate.NewAggregator(req.Addresses)
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		switch res := a.Add(tx); res.Step {
		case aggregate.StepOK:
		case aggregate.StepSkip:
			if res.Reason == aggregate.SkipMulOverflow {
				log.Warn().Str("tx_hash", tx.Hash).Str("from", tx.From).
					Str("gas_used", tx.GasUsed).Str("gas_price", tx.GasPrice).
					Msg("transaction fee overflows 256 bits, skipping")
			}
		case aggregate.StepFatal:
			return nil, errors.Wrapf(core.ErrAccumulationOverflow, "add fee of tx %s from %s", tx.Hash, tx.From)
		}
	}

	ret := a.Result()
	if ret.Stats.Malformed > 0 {
		log.Warn().Int("count", ret.Stats.Malformed).Msg("transactions with malformed gas fields counted as zero")
	}
	log.Debug().
		Str("contract", req.Contract).
		Int("transactions", ret.Stats.Processed).
		Int("matched", ret.Stats.Matched).
		Int("untracked", ret.Stats.Untracked).
		Msg("fees aggregated")

	return ret, nil
}
