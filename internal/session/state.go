// Package session holds the per-session interaction state machine that
// sequences user input, image handling and the generation calls. Exactly one
// state is active per session; while a Generating* state is active no field
// is user-editable and new submissions are refused.
package session

import (
	"strings"

	"promptstudio/internal/domain"
)

// State enumerates the steps of the interaction flow.
type State string

const (
	StateInitial                State = "INITIAL"
	StateGeneratingDescription  State = "GENERATING_DESCRIPTION"
	StateGeneratingQuestions    State = "GENERATING_QUESTIONS"
	StateAskingQuestions        State = "ASKING_QUESTIONS"
	StateGeneratingEnhancement  State = "GENERATING_ENHANCEMENT"
	StateGeneratingMagicPrompt  State = "GENERATING_MAGIC_PROMPT"
	StateGeneratingCopyPrompt   State = "GENERATING_COPY_PROMPT"
	StateGeneratingStyle        State = "GENERATING_STYLE_INFLUENCE_PROMPT"
	StateGeneratingRefinement   State = "GENERATING_REFINEMENT"
	StateShowingResults         State = "SHOWING_RESULTS"
	StateError                  State = "ERROR"
)

// Generating reports whether the state represents an in-flight call.
func (s State) Generating() bool {
	switch s {
	case StateGeneratingDescription, StateGeneratingQuestions, StateGeneratingEnhancement,
		StateGeneratingMagicPrompt, StateGeneratingCopyPrompt, StateGeneratingStyle,
		StateGeneratingRefinement:
		return true
	}
	return false
}

// generatingSources lists the states a given generating state may be entered
// from; generatingSuccess names its designated exit on success. Failure always
// exits to StateError, except that a ReadError reverts to the prior state.
var generatingSources = map[State][]State{
	StateGeneratingDescription: {StateInitial},
	StateGeneratingQuestions:   {StateInitial},
	StateGeneratingEnhancement: {StateAskingQuestions},
	StateGeneratingMagicPrompt: {StateInitial},
	StateGeneratingCopyPrompt:  {StateInitial, StateAskingQuestions},
	StateGeneratingStyle:       {StateInitial},
	StateGeneratingRefinement:  {StateShowingResults},
}

var generatingSuccess = map[State]State{
	StateGeneratingDescription: StateInitial,
	StateGeneratingQuestions:   StateAskingQuestions,
	StateGeneratingEnhancement: StateShowingResults,
	StateGeneratingMagicPrompt: StateShowingResults,
	StateGeneratingCopyPrompt:  StateShowingResults,
	StateGeneratingStyle:       StateShowingResults,
	StateGeneratingRefinement:  StateShowingResults,
}

func allowedSource(target, current State) bool {
	for _, s := range generatingSources[target] {
		if s == current {
			return true
		}
	}
	return false
}

func requireText(value, key string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(key)
	}
	return nil
}
