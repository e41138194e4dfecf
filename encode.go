package sip

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// The draft is a single JSON object holding an unfinished wizard, with the
// same fields as the web wizard's saved form:
//
//	{"selectedTokens":["BTC","ETH"],"allocations":{"BTC":50,"ETH":50},"amount":"100",
//	 "selectedStablecoin":"USDT","frequency":"custom","customInterval":{"value":2,"unit":"weeks"}}
//
// Plans are stored as JSONL, one plan per line.

// EncodeDraft writes state to w.
func EncodeDraft(w io.Writer, state *WizardState) error {
	amount := ""
	if !state.Amount.IsZero() {
		amount = state.Amount.String()
	}
	var o jsonObjectWriter
	o.Append("selectedTokens", state.Book.Selected())
	o.Append("allocations", state.Book.Allocations())
	o.Append("amount", amount)
	o.Append("selectedStablecoin", state.Stablecoin)
	o.Append("frequency", state.Schedule.Frequency())
	o.Append("customInterval", state.Schedule.Interval())
	data, err := o.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode draft: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// DecodeDraft reads a draft written by EncodeDraft. Missing fields get the
// value of a freshly opened wizard.
func DecodeDraft(r io.Reader) (*WizardState, error) {
	var jd struct {
		Selected    []Asset           `json:"selectedTokens"`
		Allocations map[Asset]Percent `json:"allocations"`
		Amount      string            `json:"amount"`
		Stablecoin  string            `json:"selectedStablecoin"`
		Frequency   Frequency         `json:"frequency"`
		Interval    *Interval         `json:"customInterval"`
	}
	if err := json.NewDecoder(r).Decode(&jd); err != nil {
		return nil, fmt.Errorf("cannot decode draft: %w", err)
	}

	allocations := make(map[Asset]Percent, len(jd.Allocations))
	for a, p := range jd.Allocations {
		asset, err := ParseAsset(string(a))
		if err != nil {
			return nil, fmt.Errorf("cannot decode draft allocation: %w", err)
		}
		allocations[asset] = p
	}
	state := NewWizardState()
	for _, a := range jd.Selected {
		asset, err := ParseAsset(string(a))
		if err != nil {
			return nil, fmt.Errorf("cannot decode draft selection: %w", err)
		}
		state.Book.restore(asset, allocations[asset])
	}
	if s := strings.TrimSpace(jd.Amount); s != "" {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("cannot decode draft amount %q: %w", jd.Amount, err)
		}
		state.Amount = v
	}
	if jd.Stablecoin != "" {
		state.Stablecoin = jd.Stablecoin
	}
	state.Schedule.SetFrequency(jd.Frequency)
	if jd.Interval != nil {
		state.Schedule.SetCustomInterval(jd.Interval.Value, jd.Interval.Unit)
	}
	return state, nil
}

// EncodePlans writes plans to w, one per line.
func EncodePlans(w io.Writer, plans []*Plan) error {
	for _, p := range plans {
		if err := EncodePlan(w, p); err != nil {
			return err
		}
	}
	return nil
}

// EncodePlan appends a single plan line to w.
func EncodePlan(w io.Writer, p *Plan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("cannot encode plan %s: %w", p.ID, err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// DecodePlans reads all plans from r. Blank lines are ignored, filename is
// for error messages only.
func DecodePlans(filename string, r io.Reader) ([]*Plan, error) {
	var plans []*Plan
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		p := new(Plan)
		if err := json.Unmarshal(line, p); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, i, err)
		}
		plans = append(plans, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}
	return plans, nil
}
