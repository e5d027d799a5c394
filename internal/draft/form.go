package draft

import "strings"

// minOptionSlots is the number of option inputs the form always displays for
// an MCQ, matching the admin UI. Blank slots carry no meaning.
const minOptionSlots = 4

// NoCorrectAnswer marks an MCQ form with no correct-answer selection.
const NoCorrectAnswer = -1

// QuestionForm is the scratch state behind the add/edit question form. It is
// presentation state, not part of the draft proper, and may hold blank option
// slots that are filtered out on commit.
type QuestionForm struct {
	Text               string
	Type               QuestionType
	Options            []string
	CorrectAnswerIndex int
}

func newQuestionForm() *QuestionForm {
	return &QuestionForm{
		Type:               QuestionTypeMCQ,
		Options:            make([]string, minOptionSlots),
		CorrectAnswerIndex: NoCorrectAnswer,
	}
}

func questionFormFrom(q Question) *QuestionForm {
	form := &QuestionForm{
		Text:               q.Text,
		Type:               q.Type,
		CorrectAnswerIndex: NoCorrectAnswer,
	}

	if q.Type == QuestionTypeMCQ {
		form.Options = make([]string, len(q.Options))
		copy(form.Options, q.Options)
		for len(form.Options) < minOptionSlots {
			form.Options = append(form.Options, "")
		}
		form.CorrectAnswerIndex = q.CorrectAnswerIndex
	} else {
		form.Options = make([]string, minOptionSlots)
	}

	return form
}

// SetType switches the question variant. Moving away from mcq discards the
// option state so a later switch back starts clean.
func (f *QuestionForm) SetType(t QuestionType) {
	f.Type = t
	if t != QuestionTypeMCQ {
		f.Options = make([]string, minOptionSlots)
		f.CorrectAnswerIndex = NoCorrectAnswer
	}
}

// SetOption updates one option slot in place.
func (f *QuestionForm) SetOption(index int, value string) {
	if index < 0 || index >= len(f.Options) {
		return
	}
	f.Options[index] = value
}

// AddOption appends a blank option slot.
func (f *QuestionForm) AddOption() {
	f.Options = append(f.Options, "")
}

// RemoveOption deletes one option slot. When the removed slot held the
// current correct-answer selection the selection is cleared rather than
// silently repointed at a neighbouring option; selections after the removed
// slot shift down to keep tracking the same option.
func (f *QuestionForm) RemoveOption(index int) {
	if index < 0 || index >= len(f.Options) {
		return
	}
	f.Options = append(f.Options[:index], f.Options[index+1:]...)

	switch {
	case f.CorrectAnswerIndex == index:
		f.CorrectAnswerIndex = NoCorrectAnswer
	case f.CorrectAnswerIndex > index:
		f.CorrectAnswerIndex--
	}
}

// SelectCorrectAnswer marks the option slot as the correct answer.
func (f *QuestionForm) SelectCorrectAnswer(index int) {
	if index < 0 || index >= len(f.Options) {
		return
	}
	f.CorrectAnswerIndex = index
}

// build validates the form and produces a question with blank options
// filtered out. The returned question has no id; the draft assigns one.
func (f *QuestionForm) build() (Question, error) {
	text := strings.TrimSpace(f.Text)
	if text == "" {
		return Question{}, ErrEmptyQuestionText
	}

	question := Question{Text: text, Type: f.Type}

	if f.Type == QuestionTypeMCQ {
		options := NormalizeOptions(f.Options)
		if len(options) < 2 {
			return Question{}, ErrTooFewOptions
		}
		if f.CorrectAnswerIndex < 0 || f.CorrectAnswerIndex >= len(options) {
			return Question{}, ErrInvalidCorrectAnswer
		}
		question.Options = options
		question.CorrectAnswerIndex = f.CorrectAnswerIndex
	}

	return question, nil
}

// NormalizeOptions trims every option and drops the blank ones, preserving
// order. This is the option list the validator and the persisted document
// agree on.
func NormalizeOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		trimmed := strings.TrimSpace(opt)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
