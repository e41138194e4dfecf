package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/sip"
	"github.com/etnz/sip/renderer"
	"github.com/google/subcommands"
)

type plansCmd struct {
	status    string
	asset     string
	frequency string
	sort      string
	asc       bool
	query     string
}

func (*plansCmd) Name() string     { return "plans" }
func (*plansCmd) Synopsis() string { return "list investment plans" }
func (*plansCmd) Usage() string {
	return `sipc plans [-status <status>] [-asset <token>] [-frequency <frequency>] [-sort created|next|amount] [-asc] [-q <jsonpath>]

  Lists the plans matching the filters, newest first.

  With -q, the matching plans are printed as the JSON value selected by the
  JSONPath query, for instance:

    sipc plans -status active -q '$[*].amountPerExecution.amount'
`
}

func (c *plansCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "all", "Only list plans with this status: all, active, paused or cancelled")
	f.StringVar(&c.asset, "asset", "", "Only list plans buying this token")
	f.StringVar(&c.frequency, "frequency", "", "Only list plans with this frequency")
	f.StringVar(&c.sort, "sort", "created", "Sort by created, next or amount")
	f.BoolVar(&c.asc, "asc", false, "Sort in ascending order")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the list of plans")
}

func (c *plansCmd) filter() (sip.Filter, error) {
	var flt sip.Filter
	var err error
	if flt.Status, err = sip.ParseStatus(c.status); err != nil {
		return flt, err
	}
	if c.asset != "" {
		if flt.Asset, err = sip.ParseAsset(c.asset); err != nil {
			return flt, err
		}
	}
	if flt.Frequency, err = sip.ParseFrequency(c.frequency); err != nil {
		return flt, err
	}
	return flt, nil
}

func (c *plansCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	flt, err := c.filter()
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	key, err := sip.ParseSortKey(c.sort)
	if err != nil {
		fmt.Fprintf(f.Output(), "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	plans, err := DecodePlans()
	if err != nil {
		return fail("Error reading plans %q: %v", *plansFile, err)
	}
	plans = sip.FilterPlans(plans, flt)
	sip.SortPlans(plans, key, c.asc)

	if c.query == "" {
		printMarkdown(renderer.Plans(plans))
		return subcommands.ExitSuccess
	}
	val, err := queryPlans(plans, c.query)
	if err != nil {
		return fail("Error: %v", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(val); err != nil {
		return fail("Error: %v", err)
	}
	return subcommands.ExitSuccess
}

// queryPlans evaluates the JSONPath query against the JSON array of plans.
func queryPlans(plans []*sip.Plan, query string) (any, error) {
	if plans == nil {
		plans = []*sip.Plan{}
	}
	data, err := json.Marshal(plans)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	val, err := jsonpath.Get(query, jobj)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", query, err)
	}
	return val, nil
}
