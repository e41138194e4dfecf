package renderer

import (
	"time"

	"github.com/etnz/sip"
)

type summaryView struct {
	Step     sip.Step
	Steps    sip.Step
	Complete bool
	Summary  sip.Summary
	Stable   sip.Stablecoin
	Issues   []sip.Issue
	Warnings []sip.Issue
}

// Summary renders the review of a wizard state, as of from, with the issues
// left to fix before the plan can be created.
func Summary(state *sip.WizardState, from time.Time) string {
	v := summaryView{Step: sip.StepReview, Steps: sip.StepReview, Warnings: state.Warnings()}
	if err := sip.NewWizard(state).Run(); err != nil {
		if se, ok := sip.IsStepError(err); ok {
			v.Step = se.Step
		}
	}
	for step := sip.StepAssets; step <= sip.StepReview; step++ {
		v.Issues = append(v.Issues, state.Check(step)...)
	}
	v.Stable, _ = sip.LookupStablecoin(state.Stablecoin)
	v.Summary, v.Complete = sip.Summarize(state, from)

	partials := map[string]string{
		"summary_issues": "summary_issues.md",
	}
	return renderTemplate("summary", "summary.md", partials, v)
}
