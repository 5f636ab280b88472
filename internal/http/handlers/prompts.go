package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"promptstudio/internal/domain"
	"promptstudio/internal/session"
)

type questionsRequest struct {
	Idea string `json:"idea"`
}

// QuestionsGenerate submits the basic idea and produces the clarifying
// question batch, moving the session to the question-answering step.
func (a *App) QuestionsGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if !a.requireConfigured(w, r) {
		return
	}
	var req questionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}

	epoch, err := sess.StartQuestions(req.Idea)
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	questions, err := a.Generator.GenerateQuestions(r.Context(), req.Idea)
	if err != nil {
		sess.Fail(epoch, a.generationMessage(r, err))
		a.writeDomainError(w, r, err)
		return
	}
	sess.FinishQuestions(epoch, questions)
	a.json(w, http.StatusOK, sess.Snapshot())
}

type answerUpdateRequest struct {
	ID           string  `json:"id"`
	ToggleOption *string `json:"toggleOption"`
	Answer       *string `json:"answer"`
}

// AnswerUpdate mutates a single question's answer: toggling one option
// (add-if-absent, remove-if-present) or replacing the free-text note.
func (a *App) AnswerUpdate(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req answerUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}
	if req.ToggleOption != nil {
		if err := sess.ToggleOption(req.ID, *req.ToggleOption); err != nil {
			a.writeDomainError(w, r, err)
			return
		}
	}
	if req.Answer != nil {
		if err := sess.SetNote(req.ID, *req.Answer); err != nil {
			a.writeDomainError(w, r, err)
			return
		}
	}
	a.json(w, http.StatusOK, sess.Snapshot())
}

// PromptEnhance produces the enhanced prompt from the idea, the answered
// questions and the optional subject image.
func (a *App) PromptEnhance(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if !a.requireConfigured(w, r) {
		return
	}
	epoch, err := sess.StartEnhancement()
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	idea, answers, subjectSlot, _, _ := sess.Context()
	subject, err := encodeSlot(subjectSlot)
	if err != nil {
		a.revertGeneration(w, r, sess, epoch, err)
		return
	}
	result, err := a.Generator.GenerateEnhancedPrompt(r.Context(), idea, answers, subject)
	if err != nil {
		sess.Fail(epoch, a.generationMessage(r, err))
		a.writeDomainError(w, r, err)
		return
	}
	sess.FinishResult(epoch, result)
	a.json(w, http.StatusOK, sess.Snapshot())
}

// PromptDescribe derives an idea from the subject image. On success the
// session returns to the Initial step with the idea field populated.
func (a *App) PromptDescribe(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if !a.requireConfigured(w, r) {
		return
	}
	epoch, err := sess.StartDescription()
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	_, _, subjectSlot, _, _ := sess.Context()
	subject, err := encodeSlot(subjectSlot)
	if err != nil {
		a.revertGeneration(w, r, sess, epoch, err)
		return
	}
	description, err := a.Generator.GenerateImageDescription(r.Context(), subject)
	if err != nil {
		sess.Fail(epoch, a.generationMessage(r, err))
		a.writeDomainError(w, r, err)
		return
	}
	sess.FinishDescription(epoch, description)
	a.json(w, http.StatusOK, sess.Snapshot())
}

type magicRequest struct {
	Idea        string             `json:"idea"`
	AspectRatio domain.AspectRatio `json:"aspectRatio"`
}

// PromptMagic creatively expands the idea without the question step.
func (a *App) PromptMagic(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if !a.requireConfigured(w, r) {
		return
	}
	var req magicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}
	epoch, err := sess.StartMagic(req.Idea, req.AspectRatio)
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	idea, _, subjectSlot, _, aspect := sess.Context()
	subject, err := encodeSlot(subjectSlot)
	if err != nil {
		a.revertGeneration(w, r, sess, epoch, err)
		return
	}
	// Preset substitution happens here, on the calling side of the builder.
	result, err := a.Generator.GenerateMagicPrompt(r.Context(), idea, aspect.ResolvePreset(), subject)
	if err != nil {
		sess.Fail(epoch, a.generationMessage(r, err))
		a.writeDomainError(w, r, err)
		return
	}
	sess.FinishResult(epoch, result)
	a.json(w, http.StatusOK, sess.Snapshot())
}

// PromptCopyImage writes a prompt reproducing the subject image.
func (a *App) PromptCopyImage(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if !a.requireConfigured(w, r) {
		return
	}
	epoch, err := sess.StartCopy()
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	_, _, subjectSlot, _, _ := sess.Context()
	subject, err := encodeSlot(subjectSlot)
	if err != nil {
		a.revertGeneration(w, r, sess, epoch, err)
		return
	}
	result, err := a.Generator.GenerateCopyImagePrompt(r.Context(), subject)
	if err != nil {
		sess.Fail(epoch, a.generationMessage(r, err))
		a.writeDomainError(w, r, err)
		return
	}
	sess.FinishResult(epoch, result)
	a.json(w, http.StatusOK, sess.Snapshot())
}

type styleRequest struct {
	Idea        string             `json:"idea"`
	AspectRatio domain.AspectRatio `json:"aspectRatio"`
}

// PromptStyleInfluence transfers the style image's manner onto the idea.
func (a *App) PromptStyleInfluence(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if !a.requireConfigured(w, r) {
		return
	}
	var req styleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}
	epoch, err := sess.StartStyle(req.Idea, req.AspectRatio)
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	idea, _, subjectSlot, styleSlot, aspect := sess.Context()
	style, err := encodeSlot(styleSlot)
	if err != nil {
		a.revertGeneration(w, r, sess, epoch, err)
		return
	}
	subject, err := encodeSlot(subjectSlot)
	if err != nil {
		a.revertGeneration(w, r, sess, epoch, err)
		return
	}
	result, err := a.Generator.GenerateStyleInfluencePrompt(r.Context(), idea, style, subject, aspect.ResolvePreset())
	if err != nil {
		sess.Fail(epoch, a.generationMessage(r, err))
		a.writeDomainError(w, r, err)
		return
	}
	sess.FinishResult(epoch, result)
	a.json(w, http.StatusOK, sess.Snapshot())
}

type refineRequest struct {
	EditedPrompt *string `json:"editedPrompt"`
}

// PromptRefine submits the user-edited prompt, with the original idea and
// answers as context, and replaces the result with the refined one.
func (a *App) PromptRefine(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if !a.requireConfigured(w, r) {
		return
	}
	var req refineRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
			return
		}
	}
	if req.EditedPrompt != nil {
		if err := sess.SetDraft(*req.EditedPrompt); err != nil {
			a.writeDomainError(w, r, err)
			return
		}
	}
	epoch, draft, err := sess.StartRefinement()
	if err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	idea, answers, subjectSlot, _, _ := sess.Context()
	subject, err := encodeSlot(subjectSlot)
	if err != nil {
		a.revertGeneration(w, r, sess, epoch, err)
		return
	}
	result, err := a.Generator.RefineEditedPrompt(r.Context(), draft, idea, answers, subject)
	if err != nil {
		sess.Fail(epoch, a.generationMessage(r, err))
		a.writeDomainError(w, r, err)
		return
	}
	sess.FinishResult(epoch, result)
	a.json(w, http.StatusOK, sess.Snapshot())
}

type editRequest struct {
	Draft string `json:"draft"`
}

// EditSet enters or updates the editing sub-mode of the results step.
func (a *App) EditSet(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}
	if err := sess.SetDraft(req.Draft); err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, sess.Snapshot())
}

// EditClear leaves the editing sub-mode, discarding the draft.
func (a *App) EditClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := sess.ClearDraft(); err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, sess.Snapshot())
}

// generationMessage localizes the user-facing message of a generation failure.
func (a *App) generationMessage(r *http.Request, err error) string {
	var generation *domain.GenerationError
	if errors.As(err, &generation) {
		return a.t(r, generation.Key, generation.Args...)
	}
	return a.t(r, "internal")
}

// revertGeneration handles an image read failure inside a generation flow:
// the session returns to its prior step so the user can retry with context
// intact, and the client receives the read-error response.
func (a *App) revertGeneration(w http.ResponseWriter, r *http.Request, sess *session.Session, epoch uint64, err error) {
	sess.Revert(epoch, a.t(r, "read_failed"))
	a.writeDomainError(w, r, err)
}
