// Package cmd implements the CLI application to prepare and manage
// systematic investment plans.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/sip"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var draftFile = flag.String("draft-file", ".sip-draft.json", "Path to the draft of the plan being prepared")
var plansFile = flag.String("plans-file", "plans.jsonl", "Path to the plans file (JSONL format)")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "verbose, log debug information on stderr")

// now is the clock of every command.
var now = time.Now

// Commands lists all the subcommands, grouped.
var Commands = []struct {
	Group string
	Cmd   subcommands.Command
}{
	{"draft", &selectCmd{}},
	{"draft", &deselectCmd{}},
	{"draft", &allocateCmd{}},
	{"draft", &amountCmd{}},
	{"draft", &frequencyCmd{}},
	{"draft", &previewCmd{}},
	{"draft", &summaryCmd{}},
	{"draft", &createCmd{}},
	{"draft", &discardCmd{}},

	{"plans", &plansCmd{}},
	{"plans", newPauseCmd()},
	{"plans", newResumeCmd()},
	{"plans", newCancelCmd()},

	{"help", &topicCmd{}},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, e := range Commands {
		c.Register(e.Cmd, e.Group)
	}
}

// Setup finishes the global configuration once flags are parsed. A .env
// file in the working directory and SIP_* variables provide the defaults of
// flags not set on the command line.
func Setup(flags *flag.FlagSet) {
	_ = godotenv.Load()

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for name, env := range map[string]string{
		"draft-file": EnvDraftFile,
		"plans-file": EnvPlansFile,
		"v":          EnvVerbose,
	} {
		if v, ok := os.LookupEnv(env); ok && !set[name] {
			if err := flags.Set(name, v); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: ignoring %s=%q: %v\n", env, v, err)
			}
		}
	}

	level := zerolog.WarnLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()
}

// printMarkdown renders md on the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Debug().Err(err).Msg("cannot render markdown")
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// DecodeDraft reads the draft file. A missing draft is a freshly opened wizard.
func DecodeDraft() (*sip.WizardState, error) {
	f, err := os.Open(*draftFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", *draftFile).Msg("no draft, starting a new one")
		return sip.NewWizardState(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sip.DecodeDraft(f)
}

// EncodeDraft saves state into the draft file.
func EncodeDraft(state *sip.WizardState) error {
	return writeFile(*draftFile, func(f *os.File) error { return sip.EncodeDraft(f, state) })
}

// RemoveDraft deletes the draft file, if any.
func RemoveDraft() error {
	err := os.Remove(*draftFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// DecodePlans reads all plans. A missing file holds no plans.
func DecodePlans() ([]*sip.Plan, error) {
	f, err := os.Open(*plansFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", *plansFile).Msg("plans file does not exist")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sip.DecodePlans(*plansFile, f)
}

// EncodePlans replaces the plans file content with plans.
func EncodePlans(plans []*sip.Plan) error {
	return writeFile(*plansFile, func(f *os.File) error { return sip.EncodePlans(f, plans) })
}

// AppendPlan appends a single plan into the plans file.
func AppendPlan(p *sip.Plan) error {
	f, err := os.OpenFile(*plansFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := sip.EncodePlan(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeFile writes a temporary file next to filename and renames it, so that
// filename is never left half written.
func writeFile(filename string, write func(f *os.File) error) error {
	f, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), filename)
}

// fail reports err on stderr and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
