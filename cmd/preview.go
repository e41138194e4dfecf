package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/sip/date"
	"github.com/etnz/sip/renderer"
	"github.com/google/subcommands"
)

type previewCmd struct {
	from string
	n    int
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "list the next executions of the plan being prepared" }
func (*previewCmd) Usage() string {
	return `sipc preview [-from <date>] [-n <count>]

  Lists the upcoming execution dates of the draft.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Date the plan would start. Defaults to now.")
	f.IntVar(&c.n, "n", 5, "Number of executions to list")
}

// startTime returns the instant s designates, now if s is empty.
func startTime(s string) (time.Time, error) {
	if s == "" {
		return now(), nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.In(time.Local), nil
}

func (c *previewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := startTime(c.from)
	if err != nil {
		fmt.Fprintf(f.Output(), "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.n <= 0 {
		fmt.Fprintf(f.Output(), "Error: -n must be positive\n")
		return subcommands.ExitUsageError
	}
	state, err := DecodeDraft()
	if err != nil {
		return fail("Error reading draft %q: %v", *draftFile, err)
	}
	printMarkdown(renderer.Preview(state.Schedule, state.Contribution(), from, c.n))
	return subcommands.ExitSuccess
}
