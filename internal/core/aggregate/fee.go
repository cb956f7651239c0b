package aggregate

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/tonindexer/gasused/internal/core"
)

// Step is the outcome of folding a single transaction into the totals.
type Step int

const (
	StepOK Step = iota
	StepSkip
	StepFatal
)

func (s Step) String() string {
	switch s {
	case StepOK:
		return "ok"
	case StepSkip:
		return "skip"
	case StepFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

type SkipReason string

const (
	SkipNone        SkipReason = ""
	SkipUntracked   SkipReason = "untracked"
	SkipMulOverflow SkipReason = "mul_overflow"
)

type StepResult struct {
	Step   Step
	Reason SkipReason

	// Fee is nil when gasPrice * gasUsed overflows.
	Fee *uint256.Int

	// Malformed is set when gasPrice or gasUsed was read as zero
	// because it is not a plain decimal number.
	Malformed bool
}

type FeesReq struct {
	// Contract is the address whose transaction history is scanned.
	Contract string `form:"contract"`

	// Addresses are the tracked senders.
	Addresses []string `form:"address"`
}

// Totals maps a tracked address to the fee it spent, in wei.
type Totals map[string]*uint256.Int

type FeeStats struct {
	Processed   int `json:"processed"`
	Matched     int `json:"matched"`
	Untracked   int `json:"untracked"`
	MulOverflow int `json:"mul_overflow"`
	Malformed   int `json:"malformed"`
}

type FeesRes struct {
	// Addresses keeps tracked addresses in the order they were given, without duplicates.
	Addresses []string
	Totals    Totals
	Stats     FeeStats
}

// ParseAmount reads a non-negative decimal amount.
// Empty strings, signs, hex and values wider than 256 bits are read as zero with ok == false.
func ParseAmount(s string) (v *uint256.Int, ok bool) {
	if s == "" {
		return new(uint256.Int), false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return new(uint256.Int), false
		}
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return new(uint256.Int), false
	}
	return v, true
}

// TxFee computes gasPrice * gasUsed of the transaction.
func TxFee(tx *core.Transaction) (fee *uint256.Int, malformed, overflow bool) {
	price, okPrice := ParseAmount(tx.GasPrice)
	used, okUsed := ParseAmount(tx.GasUsed)

	fee, overflow = new(uint256.Int).MulOverflow(price, used)
	if overflow {
		return nil, !okPrice || !okUsed, true
	}
	return fee, !okPrice || !okUsed, false
}

// Aggregator sums transaction fees by sender for a fixed set of addresses.
type Aggregator struct {
	addresses []string
	totals    Totals
	stats     FeeStats
}

func NewAggregator(tracked []string) *Aggregator {
	a := &Aggregator{totals: make(Totals, len(tracked))}
	for _, addr := range tracked {
		if _, ok := a.totals[addr]; ok {
			continue
		}
		a.addresses = append(a.addresses, addr)
		a.totals[addr] = new(uint256.Int)
	}
	return a
}

// Add folds the transaction into the totals.
// On StepFatal the totals are left untouched and the aggregator must not be used further.
func (a *Aggregator) Add(tx *core.Transaction) StepResult {
	var res StepResult

	a.stats.Processed++

	res.Fee, res.Malformed, _ = TxFee(tx)
	if res.Malformed {
		a.stats.Malformed++
	}
	if res.Fee == nil {
		a.stats.MulOverflow++
		res.Step, res.Reason = StepSkip, SkipMulOverflow
		return res
	}

	total, ok := a.totals[tx.From]
	if !ok {
		a.stats.Untracked++
		res.Step, res.Reason = StepSkip, SkipUntracked
		return res
	}

	sum, overflow := new(uint256.Int).AddOverflow(total, res.Fee)
	if overflow {
		res.Step = StepFatal
		return res
	}
	a.totals[tx.From] = sum
	a.stats.Matched++

	res.Step = StepOK
	return res
}

// Result returns a copy of the current totals.
func (a *Aggregator) Result() *FeesRes {
	ret := &FeesRes{
		Addresses: append([]string(nil), a.addresses...),
		Totals:    make(Totals, len(a.totals)),
		Stats:     a.stats,
	}
	for addr, v := range a.totals {
		ret.Totals[addr] = v.Clone()
	}
	return ret
}

// Fees computes the total fee spent by each tracked address as a transaction sender.
// Transactions whose fee overflows 256 bits are skipped, while an overflowing total is an error.
func Fees(tracked []string, txs []*core.Transaction) (*FeesRes, error) {
	a := NewAggregator(tracked)

	for _, tx := range txs {
		if tx == nil {
			continue
		}
		if res := a.Add(tx); res.Step == StepFatal {
			return nil, errors.Wrapf(core.ErrAccumulationOverflow, "add fee of tx %s from %s", tx.Hash, tx.From)
		}
	}

	return a.Result(), nil
}
