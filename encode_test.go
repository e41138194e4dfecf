package sip

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDraft(t *testing.T) {
	s := NewWizardState()
	s.Book.Select("ETH")
	s.Book.Select("BTC")
	s.Schedule.SetFrequency(Custom)
	s.Schedule.SetCustomInterval(2, Weeks)

	var buf bytes.Buffer
	if err := EncodeDraft(&buf, s); err != nil {
		t.Fatalf("EncodeDraft() unexpected error: %v", err)
	}
	want := `{"selectedTokens":["ETH","BTC"],"allocations":{"BTC":50,"ETH":100},"amount":"","selectedStablecoin":"USDT","frequency":"custom","customInterval":{"value":2,"unit":"weeks"}}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeDraft() =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodeDraft(t *testing.T) {
	// a draft as saved by the web wizard, with an invalid 150% total.
	const draft = `{
		"selectedTokens": ["SOL", "BTC"],
		"allocations": {"BTC": 50, "SOL": 100, "DOGE": 20},
		"amount": "250.5",
		"selectedStablecoin": "BUSD",
		"frequency": "monthly",
		"customInterval": {"value": 0, "unit": "months"}
	}`
	s, err := DecodeDraft(strings.NewReader(draft))
	if err != nil {
		t.Fatalf("DecodeDraft() unexpected error: %v", err)
	}

	if diff := cmp.Diff([]Asset{"SOL", "BTC"}, s.Book.Selected()); diff != "" {
		t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
	}
	// the saved allocations are restored as is, the unselected DOGE is dropped.
	if diff := cmp.Diff(map[Asset]Percent{"SOL": 100, "BTC": 50}, s.Book.Allocations()); diff != "" {
		t.Errorf("Allocations() mismatch (-want +got):\n%s", diff)
	}
	if got := s.Contribution().String(); got != "$250.50" {
		t.Errorf("Contribution() = %v want $250.50", got)
	}
	if s.Schedule.Frequency() != Monthly {
		t.Errorf("Frequency() = %v want %v", s.Schedule.Frequency(), Monthly)
	}
	if got, want := s.Schedule.Interval(), (Interval{Value: 0, Unit: Months}); got != want {
		t.Errorf("Interval() = %v want %v", got, want)
	}
}

func TestDecodeDraftSymbols(t *testing.T) {
	// a hand edited draft with non canonical symbols.
	const draft = `{"selectedTokens": ["btc", " Eth", "BTC"], "allocations": {"BTC": 70, "eth ": 30}}`
	s, err := DecodeDraft(strings.NewReader(draft))
	if err != nil {
		t.Fatalf("DecodeDraft() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]Asset{"BTC", "ETH"}, s.Book.Selected()); diff != "" {
		t.Errorf("Selected() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[Asset]Percent{"BTC": 70, "ETH": 30}, s.Book.Allocations()); diff != "" {
		t.Errorf("Allocations() mismatch (-want +got):\n%s", diff)
	}
	if !s.Book.IsValid() {
		t.Errorf("IsValid() = false want true")
	}

	if _, err := DecodeDraft(strings.NewReader(`{"selectedTokens": [" "]}`)); err == nil {
		t.Errorf("DecodeDraft() with an empty symbol want an error")
	}
}

func TestDecodeDraftDefaults(t *testing.T) {
	s, err := DecodeDraft(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("DecodeDraft({}) unexpected error: %v", err)
	}
	if s.Book.Len() != 0 || !s.Amount.IsZero() || s.Stablecoin != "USDT" || s.Schedule.Frequency() != Unset {
		t.Errorf("DecodeDraft({}) is not a fresh wizard: %+v", s)
	}
	if got, want := s.Schedule.Interval(), (Interval{Value: 1, Unit: Days}); got != want {
		t.Errorf("Interval() = %v want %v", got, want)
	}

	if _, err := DecodeDraft(strings.NewReader(`{"amount":"ten"}`)); err == nil {
		t.Errorf("DecodeDraft() with a bad amount want an error")
	}
	if _, err := DecodeDraft(strings.NewReader(`{"frequency":"hourly"}`)); err == nil {
		t.Errorf("DecodeDraft() with a bad frequency want an error")
	}
}

func TestEncodeDecodePlans(t *testing.T) {
	plans := testPlans(t)
	var buf bytes.Buffer
	if err := EncodePlans(&buf, plans); err != nil {
		t.Fatalf("EncodePlans() unexpected error: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != len(plans) {
		t.Errorf("EncodePlans() wrote %d lines want %d", n, len(plans))
	}

	got, err := DecodePlans("plans.jsonl", strings.NewReader("\n"+buf.String()+"\n\n"))
	if err != nil {
		t.Fatalf("DecodePlans() unexpected error: %v", err)
	}
	if len(got) != len(plans) {
		t.Fatalf("DecodePlans() returned %d plans want %d", len(got), len(plans))
	}
	for i := range plans {
		want, got := plans[i], got[i]
		if got.ID != want.ID || got.Status != want.Status || !got.Created.Equal(want.Created) || got.Frequency != want.Frequency {
			t.Errorf("plan %d = %+v want %+v", i, got, want)
		}
		if !got.Amount.Equal(want.Amount) || !got.NextExecution.Equal(want.NextExecution) {
			t.Errorf("plan %d amount, next = %v, %v want %v, %v", i, got.Amount, got.NextExecution, want.Amount, want.NextExecution)
		}
		if len(got.Legs) != len(want.Legs) {
			t.Errorf("plan %d has %d legs want %d", i, len(got.Legs), len(want.Legs))
		}
	}
}

func TestPlanJSON(t *testing.T) {
	s := readyState()
	s.Schedule.SetFrequency(Custom)
	s.Schedule.SetCustomInterval(2, Weeks)
	p, err := NewPlan(s, time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewPlan() unexpected error: %v", err)
	}
	p.Pause()

	var buf bytes.Buffer
	EncodePlan(&buf, p)
	want := `{"id":"` + p.ID.String() + `","createdAt":"2025-01-15T10:30:00Z","status":"paused","frequency":"custom",` +
		`"customInterval":{"value":2,"unit":"weeks"},"amountPerExecution":{"currency":"USDT","amount":"100"},` +
		`"tokens":[{"symbol":"BTC","allocation":60,"amount":{"currency":"USDT","amount":"60"}},` +
		`{"symbol":"ETH","allocation":40,"amount":{"currency":"USDT","amount":"40"}}]}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodePlan() =\n%s\nwant\n%s", got, want)
	}
}

func TestDecodePlansError(t *testing.T) {
	in := `{"id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","createdAt":"2025-01-15","status":"active","frequency":"daily"}
{"id":"6ba7b811-9dad-11d1-80b4-00c04fd430c8","createdAt":"2025-01-15","status":"sleeping"}
`
	_, err := DecodePlans("plans.jsonl", strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "plans.jsonl:2") {
		t.Errorf("DecodePlans() error = %v want an error on plans.jsonl:2", err)
	}
}
