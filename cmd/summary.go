package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/sip/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	from string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "review the plan being prepared" }
func (*summaryCmd) Usage() string {
	return `sipc summary [-from <date>]

  Displays the review of the draft: allocations, amounts, estimated fees
  and the errors left to fix before the plan can be created.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Date the plan would start. Defaults to now.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := startTime(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	state, err := DecodeDraft()
	if err != nil {
		return fail("Error reading draft %q: %v", *draftFile, err)
	}
	printMarkdown(renderer.Summary(state, from))
	return subcommands.ExitSuccess
}
