package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/sip"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline is the structure of a rendered markdown document.
type outline struct {
	Headings []string
	Rows     []int // body rows of each table
}

func parseOutline(t *testing.T, md string) outline {
	t.Helper()
	src := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	var o outline
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			o.Headings = append(o.Headings, nodeText(n, src))
		case *east.Table:
			rows := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if c.Kind() == east.KindTableRow {
					rows++
				}
			}
			o.Rows = append(o.Rows, rows)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() error = %v", err)
	}
	return o
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			continue
		}
		b.WriteString(nodeText(c, src))
	}
	return b.String()
}

func readyState(t *testing.T) *sip.WizardState {
	t.Helper()
	s := sip.NewWizardState()
	s.Book.Select("BTC")
	s.Book.Select("ETH")
	if err := s.Book.SetAllocation("BTC", 60); err != nil {
		t.Fatal(err)
	}
	if err := s.Book.SetAllocation("ETH", 40); err != nil {
		t.Fatal(err)
	}
	s.Amount = decimal.NewFromInt(100)
	s.Schedule.SetFrequency(sip.Weekly)
	return s
}

func TestMessage(t *testing.T) {
	testCases := []struct {
		issue sip.Issue
		want  string
	}{
		{sip.NoAssets, "Please select at least one token"},
		{sip.AllocationTotal, "Total allocation must equal 100%"},
		{sip.AmountMissing, "Please enter a valid investment amount"},
		{sip.AmountBelowMinimum, "Minimum investment amount is $10"},
		{sip.AmountAboveBalance, "Amount exceeds wallet balance"},
		{sip.NoFrequency, "Please select an investment frequency"},
		{sip.CustomInterval, "Please enter a valid custom interval"},
	}
	for _, tc := range testCases {
		if got := Message(tc.issue); got != tc.want {
			t.Errorf("Message(%v) = %q want %q", tc.issue, got, tc.want)
		}
	}
}

func TestFrequencyLabel(t *testing.T) {
	testCases := []struct {
		f        sip.Frequency
		interval sip.Interval
		want     string
	}{
		{sip.Unset, sip.Interval{}, "Not selected"},
		{sip.Daily, sip.Interval{Value: 3, Unit: sip.Weeks}, "Daily"},
		{sip.Weekly, sip.Interval{}, "Weekly"},
		{sip.Monthly, sip.Interval{}, "Monthly"},
		{sip.Custom, sip.Interval{Value: 2, Unit: sip.Weeks}, "Every 2 weeks"},
		{sip.Custom, sip.Interval{Value: 10, Unit: sip.Days}, "Every 10 days"},
	}
	for _, tc := range testCases {
		if got := FrequencyLabel(tc.f, tc.interval); got != tc.want {
			t.Errorf("FrequencyLabel(%v, %v) = %q want %q", tc.f, tc.interval, got, tc.want)
		}
	}
}

func TestSummary(t *testing.T) {
	from := time.Date(2025, time.September, 8, 12, 0, 0, 0, time.UTC)
	md := Summary(readyState(t), from)

	got := parseOutline(t, md)
	want := outline{
		Headings: []string{"Investment Summary", "Token Allocation", "Estimated Fees"},
		Rows:     []int{4, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summary() outline mismatch (-want +got):\n%s\n%s", diff, md)
	}
	for _, s := range []string{
		"Step 4 of 4 (review)",
		"| Frequency | Weekly |",
		"~$433.00/month",
		"Monday, September 15, 2025",
		"| BTC | 60% | $60.00 |",
		"Total per execution: $102.84",
		"Your USDT will be converted",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("Summary() does not contain %q:\n%s", s, md)
		}
	}
}

func TestSummaryIncomplete(t *testing.T) {
	md := Summary(sip.NewWizardState(), time.Now())

	got := parseOutline(t, md)
	want := outline{Headings: []string{"Investment Summary", "Please fix the following errors"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summary() outline mismatch (-want +got):\n%s\n%s", diff, md)
	}
	for _, s := range []string{
		"Step 1 of 4 (assets)",
		"Complete the form to see your investment summary.",
		"- Please select at least one token",
		"- Please enter a valid investment amount",
		"- Please select an investment frequency",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("Summary() does not contain %q:\n%s", s, md)
		}
	}
}

func TestSummaryWarnings(t *testing.T) {
	s := readyState(t)
	s.Amount = decimal.NewFromInt(3000)
	md := Summary(s, time.Now())

	got := parseOutline(t, md)
	if diff := cmp.Diff([]string{"Investment Summary", "Token Allocation", "Estimated Fees", "Warnings"}, got.Headings); diff != "" {
		t.Errorf("Summary() headings mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(md, "- Amount exceeds wallet balance") {
		t.Errorf("Summary() does not warn about the balance:\n%s", md)
	}
}

func TestPlans(t *testing.T) {
	now := time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC)
	p, err := sip.NewPlan(readyState(t), now)
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}
	md := Plans([]*sip.Plan{p})

	got := parseOutline(t, md)
	want := outline{Headings: []string{"Investment Plans"}, Rows: []int{1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plans() outline mismatch (-want +got):\n%s\n%s", diff, md)
	}
	row := "| " + p.ID.String()[:8] + " | active | Weekly | $100.00 | BTC 60%, ETH 40% | ~$433.00 | 2025-01-22 |"
	if !strings.Contains(md, row) {
		t.Errorf("Plans() does not contain %q:\n%s", row, md)
	}

	md = Plan(p)
	got = parseOutline(t, md)
	want = outline{Headings: []string{"Plan " + p.ID.String()[:8], "Token Allocation", "Upcoming Executions"}, Rows: []int{7, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plan() outline mismatch (-want +got):\n%s\n%s", diff, md)
	}
	for _, s := range []string{
		"| Created | 2025-01-15 10:30 |",
		"- Wednesday, January 22, 2025",
		"- Wednesday, January 29, 2025",
		"- Wednesday, February 5, 2025",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("Plan() does not contain %q:\n%s", s, md)
		}
	}

	if err := p.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if md = Plan(p); strings.Contains(md, "Upcoming Executions") {
		t.Errorf("Plan() of a paused plan lists upcoming executions:\n%s", md)
	}
}

func TestPlansEmpty(t *testing.T) {
	md := Plans(nil)
	if !strings.Contains(md, "No plans yet.") {
		t.Errorf("Plans(nil) = %q want a no plans message", md)
	}
}

func TestPreview(t *testing.T) {
	s := sip.NewSchedule()
	s.SetFrequency(sip.Monthly)
	from := time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC)
	md := Preview(s, sip.M(50, "USDT"), from, 3)

	got := parseOutline(t, md)
	want := outline{Headings: []string{"Upcoming Executions"}, Rows: []int{3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Preview() outline mismatch (-want +got):\n%s\n%s", diff, md)
	}
	for _, s := range []string{
		"Monthly, $50.00 USDT per execution.",
		"| 1 | Friday, February 28, 2025 | $50.00 |",
		"| 2 | Monday, March 31, 2025 | $50.00 |",
		"| 3 | Wednesday, April 30, 2025 | $50.00 |",
	} {
		if !strings.Contains(md, s) {
			t.Errorf("Preview() does not contain %q:\n%s", s, md)
		}
	}
}

func TestPreviewUnset(t *testing.T) {
	md := Preview(sip.NewSchedule(), sip.M(50, "USDT"), time.Now(), 3)
	if !strings.Contains(md, "Select a frequency to preview executions.") {
		t.Errorf("Preview() of an unset schedule = %q", md)
	}
}

func TestRenderTemplateMissing(t *testing.T) {
	got := renderTemplate("missing", "missing.md", nil, nil)
	if !strings.HasPrefix(got, "error reading main template") {
		t.Errorf("renderTemplate() = %q want a read error", got)
	}
}
