package renderer

import (
	"time"

	"github.com/etnz/sip"
)

// Plans renders a table of plans, in the given order.
func Plans(plans []*sip.Plan) string {
	return renderTemplate("plans", "plans.md", nil, plans)
}

// Plan renders the details of a single plan.
func Plan(p *sip.Plan) string {
	return renderTemplate("plan", "plan.md", nil, p)
}

type previewRow struct {
	N    int
	Date time.Time
}

type previewView struct {
	Label  string
	Amount sip.Money
	Rows   []previewRow
}

// Preview renders the next n executions of schedule after from.
func Preview(schedule *sip.Schedule, amount sip.Money, from time.Time, n int) string {
	v := previewView{
		Label:  FrequencyLabel(schedule.Frequency(), schedule.Interval()),
		Amount: amount,
	}
	if schedule.Frequency() != sip.Unset {
		for i, t := range schedule.Occurrences(from, n) {
			v.Rows = append(v.Rows, previewRow{N: i + 1, Date: t})
		}
	}
	return renderTemplate("preview", "preview.md", nil, v)
}
