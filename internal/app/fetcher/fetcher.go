package fetcher

import (
	"context"
	"time"

	"github.com/tonindexer/gasused/internal/app"
	"github.com/tonindexer/gasused/internal/core"
)

var _ app.FetcherService = (*Service)(nil)

type Service struct {
	*app.FetcherConfig
}

func NewService(cfg *app.FetcherConfig) *Service {
	c := *cfg
	if c.PageSize <= 0 {
		c.PageSize = app.DefaultPageSize
	}
	return &Service{FetcherConfig: &c}
}

// Pages returns a lazy sequence of transaction pages of the address.
func (s *Service) Pages(address string) *Pager {
	return &Pager{
		api:      s.API,
		address:  address,
		pageSize: s.PageSize,
		maxPages: s.MaxPages,
	}
}

// FetchAll requests pages one by one until the explorer returns an empty page.
// Any failed request aborts the whole retrieval.
func (s *Service) FetchAll(ctx context.Context, address string) ([]*core.Transaction, error) {
	defer app.TimeTrack(time.Now(), "FetchAll(%s)", address)

	txs := []*core.Transaction{}

	p := s.Pages(address)
	for p.Next(ctx) {
		txs = append(txs, p.Batch()...)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}
