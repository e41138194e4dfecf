package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/sip"
	"github.com/google/subcommands"
)

// maxEvery bounds custom intervals, ten years of days.
const maxEvery = 3650

type frequencyCmd struct {
	every int
	unit  string
}

func (*frequencyCmd) Name() string     { return "frequency" }
func (*frequencyCmd) Synopsis() string { return "set how often the plan invests" }
func (*frequencyCmd) Usage() string {
	return `sipc frequency daily|weekly|monthly
sipc frequency -every <n> [-unit days|weeks|months] custom

  Sets the execution frequency of the draft. A custom frequency runs every
  n days, weeks or months. Flags left out keep the draft's current value.
`
}

func (c *frequencyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.every, "every", 0, "Custom interval length")
	f.StringVar(&c.unit, "unit", "days", "Custom interval unit: days, weeks or months")
}

func (c *frequencyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	freq, err := sip.ParseFrequency(f.Arg(0))
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var every, unit bool
	f.Visit(func(fl *flag.Flag) {
		every = every || fl.Name == "every"
		unit = unit || fl.Name == "unit"
	})
	if (every || unit) && freq != sip.Custom {
		fmt.Fprintf(f.Output(), "Error: -every and -unit only apply to a custom frequency\n")
		return subcommands.ExitUsageError
	}
	if every && c.every > maxEvery {
		fmt.Fprintf(f.Output(), "Error: -every must be at most %d\n", maxEvery)
		return subcommands.ExitUsageError
	}
	u, err := sip.ParseUnit(c.unit)
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return editDraft(func(state *sip.WizardState) error {
		state.Schedule.SetFrequency(freq)
		interval := state.Schedule.Interval()
		if every {
			interval.Value = c.every
		}
		if unit {
			interval.Unit = u
		}
		state.Schedule.SetCustomInterval(interval.Value, interval.Unit)
		return nil
	})
}
