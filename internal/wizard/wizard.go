// Package wizard implements the multi-step form controller shared by the
// service and stable listing wizards: sequential step gating, per-step
// validation, guarded submission, session ownership and draft autosave.
package wizard

import (
	"github.com/samber/lo"

	"horse_portal_backend/internal/i18n"
)

// Errors maps a field key to a localized message.
type Errors map[string]string

// Add records msg for field unless the field already has an error.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Valid reports whether no field has an error.
func (e Errors) Valid() bool { return len(e) == 0 }

// Fields returns the field keys with errors.
func (e Errors) Fields() []string { return lo.Keys(e) }

// Validator is a pure per-step check over a form snapshot.
type Validator[F any] func(form F, tr i18n.Translator) Errors

// Step is one page of a wizard.
type Step[F any] struct {
	Name     string
	Validate Validator[F]
}

// Direction is the last navigation direction, used by clients to animate.
type Direction string

const (
	DirectionNone     Direction = ""
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// State is a read-only snapshot of a controller.
type State struct {
	Step       int       `json:"step"`
	Total      int       `json:"total"`
	StepName   string    `json:"stepName"`
	Errors     Errors    `json:"errors"`
	Direction  Direction `json:"direction"`
	Validated  []int     `json:"validatedSteps"`
	Submitting bool      `json:"submitting"`
}
