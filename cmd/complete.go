package cmd

import (
	"flag"
	"io"

	"github.com/etnz/sip"
	"github.com/etnz/sip/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors suggests values for flags that take a closed set of values.
var flagPredictors = map[string]complete.Predictor{
	"c":          predict.Set{"USDT", "BUSD"},
	"unit":       predict.Set{"days", "weeks", "months"},
	"status":     predict.Set{"all", "active", "paused", "cancelled"},
	"frequency":  predict.Set{"daily", "weekly", "monthly", "custom"},
	"sort":       predict.Set{"created", "next", "amount"},
	"asset":      assetPredictor(),
	"draft-file": predict.Files("*.json"),
	"plans-file": predict.Files("*.jsonl"),
}

// argPredictors suggests positional arguments.
var argPredictors = map[string]complete.Predictor{
	"select":    assetPredictor(),
	"deselect":  assetPredictor(),
	"frequency": predict.Set{"daily", "weekly", "monthly", "custom"},
	"topic":     topicPredictor(),
}

func topicPredictor() predict.Set {
	topics, _ := docs.GetAllTopics()
	return predict.Set(topics)
}

func assetPredictor() predict.Set {
	set := make(predict.Set, len(sip.SupportedAssets))
	for i, a := range sip.SupportedAssets {
		set[i] = string(a)
	}
	return set
}

// flagsOf returns the predictors of all the flags defined on fs.
func flagsOf(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the command line defined by
// the global flags and the registered subcommands.
func Completion(global *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(global),
	}
	for _, e := range Commands {
		fs := flag.NewFlagSet(e.Cmd.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		e.Cmd.SetFlags(fs)
		c.Sub[e.Cmd.Name()] = &complete.Command{Flags: flagsOf(fs), Args: argPredictors[e.Cmd.Name()]}
	}
	return c
}
