// Package draft implements the in-memory assignment draft: the editable
// structure an author builds up before submitting it for persistence. All
// mutations go through explicit operations so the draft invariants can be
// checked at single chokepoints; the UI layer never touches the topic or
// question slices directly.
package draft

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// QuestionType discriminates the question union.
type QuestionType string

const (
	QuestionTypeMCQ  QuestionType = "mcq"
	QuestionTypeText QuestionType = "text"
	QuestionTypeLink QuestionType = "link"
)

// IsValid reports whether the type is one of the supported variants.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeText, QuestionTypeLink:
		return true
	}
	return false
}

// Question is one gradable item inside a topic. Options and
// CorrectAnswerIndex are only meaningful for the mcq variant.
type Question struct {
	ID                 string
	Text               string
	Type               QuestionType
	Options            []string
	CorrectAnswerIndex int
}

// Topic is a named grouping of questions. The ID is draft-local and is
// stripped before persistence.
type Topic struct {
	ID        string
	Title     string
	Questions []Question
}

var (
	// ErrEmptyTopicTitle is returned when a topic title trims to nothing.
	ErrEmptyTopicTitle = errors.New("topic title cannot be empty")
	// ErrTopicNotFound is returned when an operation targets an unknown topic.
	ErrTopicNotFound = errors.New("topic not found in draft")
	// ErrQuestionNotFound is returned when an edit targets an unknown question.
	ErrQuestionNotFound = errors.New("question not found in draft")
	// ErrNoActiveTarget is returned when a commit happens without an active form.
	ErrNoActiveTarget = errors.New("no topic selected to add or update question")
	// ErrEmptyQuestionText is returned when the scratch form's text trims to nothing.
	ErrEmptyQuestionText = errors.New("question text cannot be empty")
	// ErrTooFewOptions is returned when an MCQ has fewer than two non-empty options.
	ErrTooFewOptions = errors.New("mcq questions require at least two non-empty options")
	// ErrInvalidCorrectAnswer is returned when the correct-answer selection is
	// missing or out of bounds against the non-empty option list.
	ErrInvalidCorrectAnswer = errors.New("mcq correct answer must point at a non-empty option")
)

// editTarget identifies which topic (and, when editing, which question) the
// scratch form is bound to.
type editTarget struct {
	topicID    string
	questionID string
}

// Draft is the unsaved assignment being composed. The zero value is not
// usable; construct with New. A Draft is confined to one session and is not
// safe for concurrent use.
type Draft struct {
	courseIDs []string
	topics    []Topic
	target    *editTarget
	form      *QuestionForm
}

// New returns an empty draft.
func New() *Draft {
	return &Draft{}
}

// SelectedCourseIDs returns the selected course ids in selection order.
func (d *Draft) SelectedCourseIDs() []string {
	out := make([]string, len(d.courseIDs))
	copy(out, d.courseIDs)
	return out
}

// Topics returns a copy of the topic list.
func (d *Draft) Topics() []Topic {
	out := make([]Topic, len(d.topics))
	for i, t := range d.topics {
		questions := make([]Question, len(t.Questions))
		copy(questions, t.Questions)
		t.Questions = questions
		out[i] = t
	}
	return out
}

// Form exposes the active scratch question form, or nil when no add/edit is
// in progress.
func (d *Draft) Form() *QuestionForm {
	return d.form
}

// Editing reports whether the active form is editing an existing question.
func (d *Draft) Editing() bool {
	return d.target != nil && d.target.questionID != ""
}

// ToggleCourse adds the course id to the selection, or removes it when
// already selected. The toggle has no error conditions.
func (d *Draft) ToggleCourse(courseID string) {
	for i, id := range d.courseIDs {
		if id == courseID {
			d.courseIDs = append(d.courseIDs[:i], d.courseIDs[i+1:]...)
			return
		}
	}
	d.courseIDs = append(d.courseIDs, courseID)
}

// AddTopic appends a new empty topic with a fresh draft-local id.
func (d *Draft) AddTopic(title string) (Topic, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return Topic{}, ErrEmptyTopicTitle
	}

	topic := Topic{ID: uuid.NewString(), Title: trimmed}
	d.topics = append(d.topics, topic)
	return topic, nil
}

// DeleteTopic removes the topic and all its questions. An active form bound
// to the topic is discarded so no dangling reference survives.
func (d *Draft) DeleteTopic(topicID string) {
	for i, t := range d.topics {
		if t.ID == topicID {
			d.topics = append(d.topics[:i], d.topics[i+1:]...)
			break
		}
	}
	if d.target != nil && d.target.topicID == topicID {
		d.clearForm()
	}
}

// BeginAddQuestion opens a blank scratch form bound to the topic.
func (d *Draft) BeginAddQuestion(topicID string) error {
	if d.findTopic(topicID) == nil {
		return ErrTopicNotFound
	}
	d.target = &editTarget{topicID: topicID}
	d.form = newQuestionForm()
	return nil
}

// BeginEditQuestion opens the scratch form pre-populated from an existing
// question. MCQ options are padded to the minimum display width without
// changing the semantic option count.
func (d *Draft) BeginEditQuestion(topicID, questionID string) error {
	topic := d.findTopic(topicID)
	if topic == nil {
		return ErrTopicNotFound
	}

	for _, q := range topic.Questions {
		if q.ID == questionID {
			d.target = &editTarget{topicID: topicID, questionID: questionID}
			d.form = questionFormFrom(q)
			return nil
		}
	}
	return ErrQuestionNotFound
}

// CancelEdit discards the scratch form without touching the draft.
func (d *Draft) CancelEdit() {
	d.clearForm()
}

// CommitQuestion validates the scratch form and applies it to the draft:
// replacing the question in place when editing, appending a new question with
// a fresh id when adding. The form is cleared on success.
func (d *Draft) CommitQuestion() (Question, error) {
	if d.target == nil || d.form == nil {
		return Question{}, ErrNoActiveTarget
	}

	question, err := d.form.build()
	if err != nil {
		return Question{}, err
	}

	topic := d.findTopic(d.target.topicID)
	if topic == nil {
		return Question{}, ErrTopicNotFound
	}

	if d.target.questionID != "" {
		question.ID = d.target.questionID
		replaced := false
		for i, q := range topic.Questions {
			if q.ID == question.ID {
				topic.Questions[i] = question
				replaced = true
				break
			}
		}
		if !replaced {
			return Question{}, ErrQuestionNotFound
		}
	} else {
		question.ID = d.freshQuestionID()
		topic.Questions = append(topic.Questions, question)
	}

	d.clearForm()
	return question, nil
}

// DeleteQuestion removes the question from the topic. An active form editing
// that question is discarded.
func (d *Draft) DeleteQuestion(topicID, questionID string) {
	topic := d.findTopic(topicID)
	if topic == nil {
		return
	}
	for i, q := range topic.Questions {
		if q.ID == questionID {
			topic.Questions = append(topic.Questions[:i], topic.Questions[i+1:]...)
			break
		}
	}
	if d.target != nil && d.target.topicID == topicID && d.target.questionID == questionID {
		d.clearForm()
	}
}

// Validate runs the shared submission rules against the current draft state.
func (d *Draft) Validate() *Violation {
	return Validate(d.courseIDs, d.topics)
}

// Reset clears the whole draft after a successful submission.
func (d *Draft) Reset() {
	d.courseIDs = nil
	d.topics = nil
	d.clearForm()
}

func (d *Draft) clearForm() {
	d.target = nil
	d.form = nil
}

func (d *Draft) findTopic(topicID string) *Topic {
	for i := range d.topics {
		if d.topics[i].ID == topicID {
			return &d.topics[i]
		}
	}
	return nil
}

// freshQuestionID returns an id guaranteed distinct from every id already in
// the draft. Collisions are vanishingly unlikely with random UUIDs; the loop
// makes the guarantee unconditional.
func (d *Draft) freshQuestionID() string {
	for {
		id := uuid.NewString()
		if !d.containsQuestionID(id) {
			return id
		}
	}
}

func (d *Draft) containsQuestionID(id string) bool {
	for _, t := range d.topics {
		for _, q := range t.Questions {
			if q.ID == id {
				return true
			}
		}
	}
	return false
}
