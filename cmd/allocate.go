package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/sip"
	"github.com/google/subcommands"
)

type allocateCmd struct{}

func (*allocateCmd) Name() string     { return "allocate" }
func (*allocateCmd) Synopsis() string { return "set the allocation of selected tokens" }
func (*allocateCmd) Usage() string {
	return `sipc allocate <token>=<percent>...

  Sets the share of each contribution going to a selected token.
  Percents are clamped to 0..100. Allocations must total 100% before
  the plan can be created.

  Example: sipc allocate BTC=60 ETH=40
`
}

func (*allocateCmd) SetFlags(f *flag.FlagSet) {}

type allocation struct {
	asset   sip.Asset
	percent sip.Percent
}

func parseAllocation(arg string) (allocation, error) {
	name, pct, ok := strings.Cut(arg, "=")
	if !ok {
		return allocation{}, fmt.Errorf("invalid allocation %q, expecting <token>=<percent>", arg)
	}
	a, err := sip.ParseAsset(name)
	if err != nil {
		return allocation{}, err
	}
	p, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(pct), "%"))
	if err != nil {
		return allocation{}, fmt.Errorf("invalid percent in %q: %w", arg, err)
	}
	return allocation{asset: a, percent: sip.Percent(p)}, nil
}

func (*allocateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	allocations := make([]allocation, 0, f.NArg())
	for _, arg := range f.Args() {
		a, err := parseAllocation(arg)
		if err != nil {
			fmt.Fprintf(f.Output(), "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		allocations = append(allocations, a)
	}
	return editDraft(func(state *sip.WizardState) error {
		for _, a := range allocations {
			if err := state.Book.SetAllocation(a.asset, a.percent); err != nil {
				return err
			}
		}
		return nil
	})
}
