// Package renderer renders wizard states and plans as markdown.
//
// It is the only place holding user facing text: the sip package reports
// issues as codes and Message turns them into sentences.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/sip"
	"github.com/google/uuid"
)

//go:embed templates/*.md
var templates embed.FS

// DayFormat is how execution days are written.
const DayFormat = "Monday, January 2, 2006"

var funcs = template.FuncMap{
	"message": Message,
	"label":   FrequencyLabel,
	"day":     func(t time.Time) string { return t.Format(DayFormat) },
	"next":    nextExecution,
	"short":   func(id uuid.UUID) string { return id.String()[:8] },
	"tokens":  tokens,
}

// Message returns the sentence explaining issue.
func Message(issue sip.Issue) string {
	switch issue {
	case sip.NoAssets:
		return "Please select at least one token"
	case sip.AllocationTotal:
		return "Total allocation must equal 100%"
	case sip.AmountMissing:
		return "Please enter a valid investment amount"
	case sip.AmountBelowMinimum:
		return fmt.Sprintf("Minimum investment amount is $%s", sip.MinimumAmount)
	case sip.AmountAboveBalance:
		return "Amount exceeds wallet balance"
	case sip.NoFrequency:
		return "Please select an investment frequency"
	case sip.CustomInterval:
		return "Please enter a valid custom interval"
	default:
		return issue.String()
	}
}

// FrequencyLabel names a frequency the way it is displayed: "Weekly", "Every 2 weeks".
func FrequencyLabel(f sip.Frequency, interval sip.Interval) string {
	switch f {
	case sip.Daily:
		return "Daily"
	case sip.Weekly:
		return "Weekly"
	case sip.Monthly:
		return "Monthly"
	case sip.Custom:
		return fmt.Sprintf("Every %d %s", interval.Value, interval.Unit)
	default:
		return "Not selected"
	}
}

func nextExecution(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func tokens(legs []sip.Leg) string {
	s := make([]string, len(legs))
	for i, l := range legs {
		s[i] = fmt.Sprintf("%s %s", l.Asset, l.Allocation)
	}
	return strings.Join(s, ", ")
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
