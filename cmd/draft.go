package cmd

import (
	"github.com/etnz/sip"
	"github.com/etnz/sip/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

// editDraft loads the draft, applies edit and saves it back, then shows the
// updated summary.
func editDraft(edit func(state *sip.WizardState) error) subcommands.ExitStatus {
	state, err := DecodeDraft()
	if err != nil {
		return fail("Error reading draft %q: %v", *draftFile, err)
	}
	if err := edit(state); err != nil {
		return fail("Error: %v", err)
	}
	if err := EncodeDraft(state); err != nil {
		return fail("Error writing draft %q: %v", *draftFile, err)
	}
	log.Debug().Str("file", *draftFile).Msg("draft saved")
	printMarkdown(renderer.Summary(state, now()))
	return subcommands.ExitSuccess
}
