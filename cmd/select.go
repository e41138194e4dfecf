package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/sip"
	"github.com/google/subcommands"
)

type selectCmd struct{}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "add tokens to the plan being prepared" }
func (*selectCmd) Usage() string {
	return `sipc select <token>...

  Adds tokens to the draft. A new token gets an equal share of 100%
  among the selected tokens, other allocations are left unchanged.
`
}

func (*selectCmd) SetFlags(f *flag.FlagSet) {}

func (*selectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assets, err := parseAssets(f.Args())
	if err != nil {
		return fail("Error: %v", err)
	}
	if len(assets) == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return editDraft(func(state *sip.WizardState) error {
		for _, a := range assets {
			state.Book.Select(a)
		}
		return nil
	})
}

type deselectCmd struct{}

func (*deselectCmd) Name() string     { return "deselect" }
func (*deselectCmd) Synopsis() string { return "remove tokens from the plan being prepared" }
func (*deselectCmd) Usage() string {
	return `sipc deselect <token>...

  Removes tokens and their allocation from the draft.
`
}

func (*deselectCmd) SetFlags(f *flag.FlagSet) {}

func (*deselectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assets, err := parseAssets(f.Args())
	if err != nil {
		return fail("Error: %v", err)
	}
	if len(assets) == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return editDraft(func(state *sip.WizardState) error {
		for _, a := range assets {
			if !state.Book.Has(a) {
				return fmt.Errorf("%s: %w", a, sip.ErrNotSelected)
			}
			state.Book.Deselect(a)
		}
		return nil
	})
}

func parseAssets(args []string) ([]sip.Asset, error) {
	assets := make([]sip.Asset, 0, len(args))
	for _, arg := range args {
		a, err := sip.ParseAsset(arg)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}
