// Package sip implements the rules behind a systematic investment plan (SIP):
// a fixed contribution invested on a recurring schedule and split across a
// set of crypto assets.
//
// The package provides:
//   - AllocationBook: the selected assets and the percentage of each
//     contribution they receive. Percentages are bounded to [0, 100] and a
//     book is valid only when they total exactly 100%.
//   - Schedule: the frequency of a plan, used to preview the next execution
//     and the monthly equivalent of a contribution.
//   - WizardState and Wizard: what a user entered while creating a plan, and
//     the per-step checks gating the creation.
//   - Plan: a confirmed plan, that can be paused, resumed or cancelled.
//
// Everything is computed in memory, time is always supplied by the caller.
// Persisting drafts and plans is left to the callers, using the Encode and
// Decode functions.
package sip
