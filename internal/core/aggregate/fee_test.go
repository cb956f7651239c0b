package aggregate

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonindexer/gasused/internal/core"
)

const oneEther = "1000000000000000000"

// 2^256 - 1
const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func tx(from, gasUsed, gasPrice string) *core.Transaction {
	return &core.Transaction{From: from, GasUsed: gasUsed, GasPrice: gasPrice}
}

func ether(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), uint256.MustFromDecimal(oneEther))
}

func TestFees(t *testing.T) {
	txs := []*core.Transaction{
		tx("foo", "1", oneEther),
		tx("foo", "1", oneEther),
		tx("bar", "1", oneEther),
	}

	res, err := Fees([]string{"foo", "bar", "baz"}, txs)
	require.NoError(t, err)

	require.Len(t, res.Totals, 3)
	assert.Equal(t, ether(2), res.Totals["foo"])
	assert.Equal(t, ether(1), res.Totals["bar"])
	assert.True(t, res.Totals["baz"].IsZero())

	assert.Equal(t, []string{"foo", "bar", "baz"}, res.Addresses)
	assert.Equal(t, FeeStats{Processed: 3, Matched: 3}, res.Stats)

	assert.Equal(t, "2", FormatEther(res.Totals["foo"]))
	assert.Equal(t, "1", FormatEther(res.Totals["bar"]))
	assert.Equal(t, "0", FormatEther(res.Totals["baz"]))
}

func TestFees_Empty(t *testing.T) {
	res, err := Fees([]string{"foo", "bar"}, nil)
	require.NoError(t, err)
	require.Len(t, res.Totals, 2)
	for _, v := range res.Totals {
		assert.True(t, v.IsZero())
	}

	res, err = Fees(nil, []*core.Transaction{tx("foo", "1", "1")})
	require.NoError(t, err)
	assert.Len(t, res.Totals, 0)
	assert.Equal(t, 1, res.Stats.Untracked)
}

func TestFees_UntrackedSenders(t *testing.T) {
	var txs []*core.Transaction
	for i := 0; i < 50; i++ {
		txs = append(txs, tx("stranger", "21000", "1000000000"))
	}
	txs = append(txs, tx("foo", "21000", "1000000000"))

	res, err := Fees([]string{"foo", "FOO"}, txs)
	require.NoError(t, err)

	require.Len(t, res.Totals, 2)
	_, ok := res.Totals["stranger"]
	assert.False(t, ok)
	assert.Equal(t, uint256.NewInt(21000*1000000000), res.Totals["foo"])
	assert.True(t, res.Totals["FOO"].IsZero()) // exact match only
	assert.Equal(t, 50, res.Stats.Untracked)
	assert.Equal(t, "0.000021", FormatEther(res.Totals["foo"]))
}

func TestFees_DuplicateTracked(t *testing.T) {
	res, err := Fees([]string{"foo", "foo", "bar"}, []*core.Transaction{tx("foo", "2", "3")})
	require.NoError(t, err)
	assert.Len(t, res.Totals, 2)
	assert.Equal(t, []string{"foo", "bar"}, res.Addresses)
	assert.Equal(t, uint256.NewInt(6), res.Totals["foo"])
}

func TestFees_Malformed(t *testing.T) {
	txs := []*core.Transaction{
		tx("foo", "abc", oneEther),
		tx("foo", "1", ""),
		tx("foo", "-1", "5"),
		tx("foo", "1", "0x10"),
		tx("foo", "1", " 7"),
		tx("foo", "1", "1"+maxUint256),
		tx("foo", "3", "4"),
	}

	res, err := Fees([]string{"foo"}, txs)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(12), res.Totals["foo"])
	assert.Equal(t, 6, res.Stats.Malformed)
	assert.Equal(t, 7, res.Stats.Matched)
}

func TestFees_Idempotent(t *testing.T) {
	txs := []*core.Transaction{
		tx("foo", "21000", "30000000000"),
		tx("bar", "50000", "12"),
		tx("foo", "2", maxUint256),
		tx("bar", "zero", "12"),
	}
	tracked := []string{"foo", "bar"}

	first, err := Fees(tracked, txs)
	require.NoError(t, err)
	second, err := Fees(tracked, txs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFees_Commutative(t *testing.T) {
	var txs []*core.Transaction
	senders := []string{"foo", "bar", "baz", "qux"}
	for i := 0; i < 200; i++ {
		txs = append(txs, &core.Transaction{
			From:     senders[i%len(senders)],
			GasUsed:  uint256.NewInt(uint64(21000 + i)).Dec(),
			GasPrice: uint256.NewInt(uint64(1000000000 * (i + 1))).Dec(),
		})
	}
	tracked := []string{"foo", "bar", "baz"}

	want, err := Fees(tracked, txs)
	require.NoError(t, err)

	rnd := rand.New(rand.NewSource(42)) //nolint:gosec // test shuffle
	for i := 0; i < 5; i++ {
		shuffled := append([]*core.Transaction(nil), txs...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := Fees(tracked, shuffled)
		require.NoError(t, err)
		assert.Equal(t, want.Totals, got.Totals)
	}
}

func TestFees_OverflowAsymmetry(t *testing.T) {
	// the product overflows, the transaction is dropped
	res, err := Fees([]string{"foo"}, []*core.Transaction{
		tx("foo", "2", maxUint256),
		tx("foo", "1", "5"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(5), res.Totals["foo"])
	assert.Equal(t, 1, res.Stats.MulOverflow)

	// the sum overflows, aggregation fails
	res, err = Fees([]string{"foo"}, []*core.Transaction{
		tx("foo", "1", maxUint256),
		tx("foo", "1", "1"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrAccumulationOverflow))
	assert.Nil(t, res)
}

func TestAggregator_Add(t *testing.T) {
	a := NewAggregator([]string{"foo"})

	r := a.Add(tx("foo", "1", maxUint256))
	assert.Equal(t, StepOK, r.Step)
	assert.Equal(t, SkipNone, r.Reason)

	r = a.Add(tx("bar", "1", "1"))
	assert.Equal(t, StepSkip, r.Step)
	assert.Equal(t, SkipUntracked, r.Reason)

	r = a.Add(tx("foo", "3", maxUint256))
	assert.Equal(t, StepSkip, r.Step)
	assert.Equal(t, SkipMulOverflow, r.Reason)
	assert.Nil(t, r.Fee)

	r = a.Add(tx("foo", "1", "1"))
	assert.Equal(t, StepFatal, r.Step)
	assert.Equal(t, "fatal", r.Step.String())

	// totals are untouched by the failed step
	assert.Equal(t, uint256.MustFromDecimal(maxUint256), a.Result().Totals["foo"])
}

func TestParseAmount(t *testing.T) {
	var testCases = []*struct {
		in  string
		out uint64
		ok  bool
	}{
		{in: "0", out: 0, ok: true},
		{in: "21000", out: 21000, ok: true},
		{in: "00042", out: 42, ok: true},
		{in: "", ok: false},
		{in: "+1", ok: false},
		{in: "-1", ok: false},
		{in: "1.5", ok: false},
		{in: "0x1f", ok: false},
		{in: "1e18", ok: false},
		{in: "twelve", ok: false},
	}

	for _, c := range testCases {
		v, ok := ParseAmount(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.out, v.Uint64(), c.in)
	}

	v, ok := ParseAmount(maxUint256)
	assert.True(t, ok)
	assert.Equal(t, maxUint256, v.Dec())

	v, ok = ParseAmount("115792089237316195423570985008687907853269984665640564039457584007913129639936")
	assert.False(t, ok)
	assert.True(t, v.IsZero())
}
