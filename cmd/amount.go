package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/sip"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type amountCmd struct {
	coin string
}

func (*amountCmd) Name() string     { return "amount" }
func (*amountCmd) Synopsis() string { return "set the amount invested at each execution" }
func (*amountCmd) Usage() string {
	return `sipc amount [-c <stablecoin>] <amount>

  Sets the amount of stablecoin invested at each execution. The minimum is 10.
`
}

func (c *amountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.coin, "c", "", "Stablecoin funding the plan (USDT or BUSD). Defaults to the draft's one.")
}

func (c *amountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: invalid amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	var coin sip.Stablecoin
	if c.coin != "" {
		var ok bool
		if coin, ok = sip.LookupStablecoin(c.coin); !ok {
			fmt.Fprintf(f.Output(), "Error: unsupported stablecoin %q\n", c.coin)
			return subcommands.ExitUsageError
		}
	}
	return editDraft(func(state *sip.WizardState) error {
		state.Amount = amount
		if coin.Symbol != "" {
			state.Stablecoin = coin.Symbol
		}
		return nil
	})
}
