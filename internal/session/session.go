package session

import (
	"strings"
	"sync"
	"time"

	"promptstudio/internal/domain"
)

// ImageSlot retains an accepted upload: the raw bytes for later encoding plus
// the preview shown to the user.
type ImageSlot struct {
	Data     []byte
	MimeType string
	Preview  string
}

// IsZero reports whether the slot is empty.
func (s ImageSlot) IsZero() bool { return len(s.Data) == 0 }

// Session is the single source of truth for one user's flow. All methods are
// safe for concurrent use; the epoch closes the race between an in-flight
// generation and a reset: a completion carrying a stale epoch is discarded.
type Session struct {
	mu sync.Mutex

	id       string
	state    State
	prior    State
	epoch    uint64
	lastSeen time.Time

	idea    string
	answers []domain.QuestionAnswer
	subject ImageSlot
	style   ImageSlot
	aspect  domain.AspectRatio
	result  *domain.EnhancedPromptResult
	draft   string
	editing bool
	message string
}

func newSession(id string) *Session {
	return &Session{
		id:       id,
		state:    StateInitial,
		aspect:   domain.DefaultAspectRatio(),
		lastSeen: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot is the render-ready view of a session.
type Snapshot struct {
	ID          string                       `json:"id"`
	State       State                        `json:"state"`
	Idea        string                       `json:"idea"`
	Answers     []domain.QuestionAnswer      `json:"answers"`
	Subject     string                       `json:"subjectPreview,omitempty"`
	Style       string                       `json:"stylePreview,omitempty"`
	AspectRatio domain.AspectRatio           `json:"aspectRatio"`
	Result      *domain.EnhancedPromptResult `json:"result,omitempty"`
	Draft       string                       `json:"draft,omitempty"`
	Editing     bool                         `json:"editing"`
	Message     string                       `json:"message,omitempty"`
}

// Snapshot returns a copy of the observable session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	answers := make([]domain.QuestionAnswer, len(s.answers))
	copy(answers, s.answers)
	return Snapshot{
		ID:          s.id,
		State:       s.state,
		Idea:        s.idea,
		Answers:     answers,
		Subject:     s.subject.Preview,
		Style:       s.style.Preview,
		AspectRatio: s.aspect,
		Result:      s.result,
		Draft:       s.draft,
		Editing:     s.editing,
		Message:     s.message,
	}
}

// Reset returns the session to Initial and clears every accumulated value.
// Bumping the epoch abandons any in-flight generation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.state = StateInitial
	s.prior = StateInitial
	s.idea = ""
	s.answers = nil
	s.subject = ImageSlot{}
	s.style = ImageSlot{}
	s.aspect = domain.DefaultAspectRatio()
	s.result = nil
	s.draft = ""
	s.editing = false
	s.message = ""
}

// begin moves into a generating state after checking the source-state rule.
// Caller holds the lock.
func (s *Session) begin(target State) (uint64, error) {
	if s.state.Generating() {
		return 0, domain.ErrBusy
	}
	if !allowedSource(target, s.state) {
		return 0, domain.NewValidationError("wrong_step")
	}
	s.prior = s.state
	s.state = target
	s.message = ""
	return s.epoch, nil
}

// finish applies a successful completion unless the epoch is stale. Caller
// holds the lock.
func (s *Session) finish(epoch uint64, apply func()) bool {
	if epoch != s.epoch || !s.state.Generating() {
		return false
	}
	next := generatingSuccess[s.state]
	apply()
	s.state = next
	return true
}

// Fail moves a generating session to the Error step with a user-facing
// message. Stale completions are discarded.
func (s *Session) Fail(epoch uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.state.Generating() {
		return false
	}
	s.state = StateError
	s.message = message
	return true
}

// Revert returns a generating session to the state it started from, keeping
// all context so the user can retry. Used for image read failures.
func (s *Session) Revert(epoch uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || !s.state.Generating() {
		return false
	}
	s.state = s.prior
	s.message = message
	return true
}

// StartQuestions validates the idea and enters the question-generation step.
// A new submission discards the previous question batch.
func (s *Session) StartQuestions(idea string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := requireText(idea, "idea_required"); err != nil {
		return 0, err
	}
	epoch, err := s.begin(StateGeneratingQuestions)
	if err != nil {
		return 0, err
	}
	s.idea = strings.TrimSpace(idea)
	s.answers = nil
	return epoch, nil
}

// FinishQuestions installs the parsed question batch.
func (s *Session) FinishQuestions(epoch uint64, questions []domain.Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finish(epoch, func() {
		s.answers = domain.NewAnswers(questions)
	})
}

// StartDescription enters the image-to-text step; requires a subject image.
func (s *Session) StartDescription() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subject.IsZero() {
		return 0, domain.NewValidationError("subject_image_required")
	}
	return s.begin(StateGeneratingDescription)
}

// FinishDescription replaces the idea with the generated description.
func (s *Session) FinishDescription(epoch uint64, description string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finish(epoch, func() {
		s.idea = description
	})
}

// StartEnhancement enters the final enhancement step from the question step.
func (s *Session) StartEnhancement() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := requireText(s.idea, "idea_required"); err != nil {
		return 0, err
	}
	return s.begin(StateGeneratingEnhancement)
}

// StartMagic enters the magic-prompt step after validating the aspect choice.
func (s *Session) StartMagic(idea string, aspect domain.AspectRatio) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := requireText(idea, "idea_required"); err != nil {
		return 0, err
	}
	if err := aspect.Validate(); err != nil {
		return 0, err
	}
	epoch, err := s.begin(StateGeneratingMagicPrompt)
	if err != nil {
		return 0, err
	}
	s.idea = strings.TrimSpace(idea)
	s.aspect = aspect
	return epoch, nil
}

// StartCopy enters the copy-image step; requires a subject image.
func (s *Session) StartCopy() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subject.IsZero() {
		return 0, domain.NewValidationError("subject_image_required")
	}
	return s.begin(StateGeneratingCopyPrompt)
}

// StartStyle enters the style-influence step; requires an idea and a style
// image, with an optional subject image and aspect choice.
func (s *Session) StartStyle(idea string, aspect domain.AspectRatio) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := requireText(idea, "idea_required"); err != nil {
		return 0, err
	}
	if s.style.IsZero() {
		return 0, domain.NewValidationError("style_image_required")
	}
	if err := aspect.Validate(); err != nil {
		return 0, err
	}
	epoch, err := s.begin(StateGeneratingStyle)
	if err != nil {
		return 0, err
	}
	s.idea = strings.TrimSpace(idea)
	s.aspect = aspect
	return epoch, nil
}

// StartRefinement enters the refinement step from the editing sub-mode of the
// results step. The edit draft must be non-empty.
func (s *Session) StartRefinement() (uint64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return 0, "", domain.NewValidationError("wrong_step")
	}
	if err := requireText(s.draft, "edit_draft_required"); err != nil {
		return 0, "", err
	}
	epoch, err := s.begin(StateGeneratingRefinement)
	if err != nil {
		return 0, "", err
	}
	return epoch, s.draft, nil
}

// FinishResult installs a fresh generation result, replacing the previous one
// and leaving the editing sub-mode.
func (s *Session) FinishResult(epoch uint64, result *domain.EnhancedPromptResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finish(epoch, func() {
		s.result = result
		s.draft = ""
		s.editing = false
	})
}

// ToggleOption flips one option of a question. Only valid on the question step.
func (s *Session) ToggleOption(id, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAskingQuestions {
		return domain.NewValidationError("wrong_step")
	}
	for i := range s.answers {
		if s.answers[i].ID == id {
			s.answers[i].ToggleOption(option)
			return nil
		}
	}
	return domain.NewValidationError("question_unknown")
}

// SetNote sets the free-text supplement of a question's answer.
func (s *Session) SetNote(id, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAskingQuestions {
		return domain.NewValidationError("wrong_step")
	}
	for i := range s.answers {
		if s.answers[i].ID == id {
			s.answers[i].Answer = note
			return nil
		}
	}
	return domain.NewValidationError("question_unknown")
}

// SetDraft enters (or updates) the editing sub-mode on the results step.
func (s *Session) SetDraft(draft string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateShowingResults || s.result == nil {
		return domain.NewValidationError("wrong_step")
	}
	s.draft = draft
	s.editing = true
	return nil
}

// ClearDraft leaves the editing sub-mode, discarding the draft.
func (s *Session) ClearDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateShowingResults {
		return domain.NewValidationError("wrong_step")
	}
	s.draft = ""
	s.editing = false
	return nil
}

// SetImage stores an accepted upload in the given slot. Refused while a
// generation is in flight.
func (s *Session) SetImage(slot string, data []byte, mimeType, preview string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Generating() {
		return domain.ErrBusy
	}
	img := ImageSlot{Data: data, MimeType: mimeType, Preview: preview}
	switch slot {
	case "style":
		s.style = img
	default:
		s.subject = img
	}
	s.message = ""
	return nil
}

// ClearImage empties the given slot, its preview and any pending message.
func (s *Session) ClearImage(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Generating() {
		return domain.ErrBusy
	}
	switch slot {
	case "style":
		s.style = ImageSlot{}
	default:
		s.subject = ImageSlot{}
	}
	s.message = ""
	return nil
}

// Context returns copies of the inputs a generation call needs.
func (s *Session) Context() (idea string, answers []domain.QuestionAnswer, subject, style ImageSlot, aspect domain.AspectRatio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answers = make([]domain.QuestionAnswer, len(s.answers))
	copy(answers, s.answers)
	return s.idea, answers, s.subject, s.style, s.aspect
}
