package fetcher

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tonindexer/gasused/internal/app"
	"github.com/tonindexer/gasused/internal/core"
)

// Pager walks the transaction history page by page, newest first.
//
//	p := s.Pages(address)
//	for p.Next(ctx) {
//		use(p.Batch())
//	}
//	if err := p.Err(); err != nil {
//		...
//	}
type Pager struct {
	api      app.ExplorerAPI
	address  string
	pageSize int
	maxPages int

	page  int
	batch []*core.Transaction
	done  bool
	err   error
}

// Next requests the following page. It returns false after an empty page or a failed request.
func (p *Pager) Next(ctx context.Context) bool {
	if p.done {
		return false
	}

	page := p.page + 1

	log.Info().Str("address", p.address).Int("page", page).Msg("querying explorer page")

	batch, err := p.api.AccountTransactions(ctx, &core.TransactionPageReq{
		Address:  p.address,
		Page:     page,
		PageSize: p.pageSize,
		Sort:     core.SortDesc,
	})
	p.page = page
	p.batch = nil

	switch {
	case err != nil:
		p.err = errors.Wrapf(err, "fetch transactions page %d of %s", page, p.address)
	case len(batch) == 0:
		log.Debug().Str("address", p.address).Int("pages", page-1).Msg("transaction history exhausted")
	case p.maxPages > 0 && page > p.maxPages:
		p.err = errors.Wrapf(core.ErrPageLimit, "%s has more than %d pages", p.address, p.maxPages)
	default:
		p.batch = batch
		return true
	}

	p.done = true
	return false
}

// Batch returns transactions of the last fetched page.
func (p *Pager) Batch() []*core.Transaction {
	return p.batch
}

// Page returns the number of the last requested page.
func (p *Pager) Page() int {
	return p.page
}

func (p *Pager) Err() error {
	return p.err
}
