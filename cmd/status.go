package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/etnz/sip"
	"github.com/etnz/sip/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// updatePlans applies change to the plans whose IDs start with prefixes and
// saves all plans once.
//
// Unknown or ambiguous prefixes abort before anything changes. Plans whose
// status does not allow the change are skipped, the command fails only when
// no plan changed.
func updatePlans(prefixes []string, change func(p *sip.Plan) error) subcommands.ExitStatus {
	plans, err := DecodePlans()
	if err != nil {
		return fail("Error reading plans %q: %v", *plansFile, err)
	}
	var targets []*sip.Plan
	for _, prefix := range prefixes {
		p, err := sip.FindPlan(plans, prefix)
		if err != nil {
			return fail("Error: %v", err)
		}
		if !slices.Contains(targets, p) {
			targets = append(targets, p)
		}
	}

	var changed []*sip.Plan
	for _, p := range targets {
		err := change(p)
		if errors.Is(err, sip.ErrTransition) {
			fmt.Fprintf(os.Stderr, "Skipping plan %s: %v\n", p.ID, err)
			continue
		}
		if err != nil {
			return fail("Error: %v", err)
		}
		log.Info().Str("id", p.ID.String()).Str("status", p.Status.String()).Msg("plan updated")
		changed = append(changed, p)
	}
	if len(changed) == 0 {
		return fail("Error: no plan changed")
	}

	if err := EncodePlans(plans); err != nil {
		return fail("Error writing plans %q: %v", *plansFile, err)
	}
	if len(changed) == 1 {
		printMarkdown(renderer.Plan(changed[0]))
	} else {
		printMarkdown(renderer.Plans(changed))
	}
	return subcommands.ExitSuccess
}

// transitionCmd is a subcommand changing the status of plans.
type transitionCmd struct {
	name, synopsis, usage string
	change                func(p *sip.Plan, now time.Time) error
}

func (c *transitionCmd) Name() string     { return c.name }
func (c *transitionCmd) Synopsis() string { return c.synopsis }
func (c *transitionCmd) Usage() string    { return c.usage }

func (*transitionCmd) SetFlags(f *flag.FlagSet) {}

func (c *transitionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return updatePlans(f.Args(), func(p *sip.Plan) error { return c.change(p, now()) })
}

func newPauseCmd() *transitionCmd {
	return &transitionCmd{
		name:     "pause",
		synopsis: "pause active plans",
		usage: `sipc pause <plan id>...

  Stops the executions of active plans. Ids can be shortened to any
  unambiguous prefix. Plans that are not active are skipped.
`,
		change: func(p *sip.Plan, _ time.Time) error { return p.Pause() },
	}
}

func newResumeCmd() *transitionCmd {
	return &transitionCmd{
		name:     "resume",
		synopsis: "resume paused plans",
		usage: `sipc resume <plan id>...

  Restarts paused plans, their next execution is one period from now.
  Plans that are not paused are skipped.
`,
		change: (*sip.Plan).Resume,
	}
}

func newCancelCmd() *transitionCmd {
	return &transitionCmd{
		name:     "cancel",
		synopsis: "cancel plans",
		usage: `sipc cancel <plan id>...

  Terminates active or paused plans. A cancelled plan cannot be resumed.
`,
		change: func(p *sip.Plan, _ time.Time) error { return p.Cancel() },
	}
}
