package cmd

import (
	"context"
	"errors"
	"flag"

	"github.com/etnz/sip"
	"github.com/etnz/sip/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type createCmd struct{}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "confirm the plan being prepared" }
func (*createCmd) Usage() string {
	return `sipc create

  Turns the draft into an active plan, appends it to the plans file and
  clears the draft. The draft is kept if it is not complete.
`
}

func (*createCmd) SetFlags(f *flag.FlagSet) {}

func (*createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	state, err := DecodeDraft()
	if err != nil {
		return fail("Error reading draft %q: %v", *draftFile, err)
	}
	p, err := sip.NewPlan(state, now())
	if errors.Is(err, sip.ErrIncomplete) {
		printMarkdown(renderer.Summary(state, now()))
		return fail("Error: %v", err)
	}
	if err != nil {
		return fail("Error: %v", err)
	}
	if err := AppendPlan(p); err != nil {
		return fail("Error writing plans file %q: %v", *plansFile, err)
	}
	log.Info().Str("id", p.ID.String()).Str("file", *plansFile).Msg("plan created")
	if err := RemoveDraft(); err != nil {
		return fail("Error removing draft %q: %v", *draftFile, err)
	}
	printMarkdown(renderer.Plan(p))
	return subcommands.ExitSuccess
}

type discardCmd struct{}

func (*discardCmd) Name() string     { return "discard" }
func (*discardCmd) Synopsis() string { return "abandon the plan being prepared" }
func (*discardCmd) Usage() string {
	return `sipc discard

  Deletes the draft.
`
}

func (*discardCmd) SetFlags(f *flag.FlagSet) {}

func (*discardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := RemoveDraft(); err != nil {
		return fail("Error removing draft %q: %v", *draftFile, err)
	}
	return subcommands.ExitSuccess
}
