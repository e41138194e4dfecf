package sip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gas estimation, in BNB. A plan pays a base fee plus a fee per asset bought.
var (
	baseGasFee     = Q(0.005)
	perAssetGasFee = decimal.RequireFromString("0.002")
	bnbPrice       = decimal.RequireFromString("315.89")
)

// Leg is the share of each contribution going to one asset.
type Leg struct {
	Asset      Asset   `json:"symbol"`
	Allocation Percent `json:"allocation"`
	Amount     Money   `json:"amount"`
}

// Legs splits amount across the selected assets of b, in selection order.
func Legs(b *AllocationBook, amount Money) []Leg {
	legs := make([]Leg, 0, b.Len())
	for _, a := range b.Selected() {
		p := b.Allocation(a)
		legs = append(legs, Leg{Asset: a, Allocation: p, Amount: amount.Percent(p)})
	}
	return legs
}

// EstimateGasFee returns the estimated gas, in BNB, of an execution buying n assets.
func EstimateGasFee(n int) Quantity {
	return baseGasFee.Add(Q(perAssetGasFee.Mul(decimal.NewFromInt(int64(n)))))
}

// Summary is the review of a plan before it is confirmed.
type Summary struct {
	Legs        []Leg
	Amount      Money // per execution
	Frequency   Frequency
	Interval    Interval
	Monthly     Money
	Next        time.Time
	GasFee      Quantity // in BNB
	GasFeeValue Money
	Total       Money // amount and gas fee value
}

// Summarize reviews state as of from. It returns false when there is not
// enough information yet: no asset, no amount, or no frequency.
func Summarize(state *WizardState, from time.Time) (Summary, bool) {
	if state.Book.Len() == 0 || state.Amount.IsZero() || state.Schedule.Frequency() == Unset {
		return Summary{}, false
	}
	amount := state.Contribution()
	gas := EstimateGasFee(state.Book.Len())
	gasValue := gas.Value(M(bnbPrice, amount.Currency()))
	return Summary{
		Legs:        Legs(state.Book, amount),
		Amount:      amount,
		Frequency:   state.Schedule.Frequency(),
		Interval:    state.Schedule.Interval(),
		Monthly:     state.Schedule.MonthlyEquivalent(amount),
		Next:        state.Schedule.NextOccurrence(from),
		GasFee:      gas,
		GasFeeValue: gasValue,
		Total:       amount.Add(gasValue),
	}, true
}
