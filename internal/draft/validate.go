package draft

import (
	"fmt"
	"strings"
)

// ViolationKind names one specific reason a draft fails submission validation.
type ViolationKind string

const (
	NoCourseSelected     ViolationKind = "no_course_selected"
	NoTopics             ViolationKind = "no_topics"
	EmptyTopicTitle      ViolationKind = "empty_topic_title"
	TopicHasNoQuestions  ViolationKind = "topic_has_no_questions"
	EmptyQuestionText    ViolationKind = "empty_question_text"
	InvalidQuestionType  ViolationKind = "invalid_question_type"
	TooFewOptions        ViolationKind = "too_few_options"
	InvalidCorrectAnswer ViolationKind = "invalid_correct_answer"
)

// Sections the UI can switch to so the author sees the failing input.
const (
	SectionCourses = "courses"
	SectionTopics  = "topics"
)

// Violation describes the first submission rule a draft breaks. TopicIndex
// and QuestionIndex are -1 when the rule is not positional.
type Violation struct {
	Kind          ViolationKind
	TopicIndex    int
	QuestionIndex int
	TopicTitle    string
	QuestionText  string
}

// Section names the form section containing the violation.
func (v *Violation) Section() string {
	if v.Kind == NoCourseSelected {
		return SectionCourses
	}
	return SectionTopics
}

// Message renders the human-readable text surfaced verbatim to the author.
func (v *Violation) Message() string {
	switch v.Kind {
	case NoCourseSelected:
		return "Please select at least one course."
	case NoTopics:
		return "Please add at least one topic."
	case EmptyTopicTitle:
		return fmt.Sprintf("Topic %d must have a title.", v.TopicIndex+1)
	case TopicHasNoQuestions:
		return fmt.Sprintf("Topic %q must have at least one question.", v.TopicTitle)
	case EmptyQuestionText:
		return fmt.Sprintf("Question %d in topic %q must have question text.", v.QuestionIndex+1, v.TopicTitle)
	case InvalidQuestionType:
		return fmt.Sprintf("Question %q in topic %q has an unsupported type.", v.QuestionText, v.TopicTitle)
	case TooFewOptions:
		return fmt.Sprintf("MCQ question %q in topic %q must have at least two non-empty options.", v.QuestionText, v.TopicTitle)
	case InvalidCorrectAnswer:
		return fmt.Sprintf("MCQ question %q in topic %q must have a valid correct answer selected.", v.QuestionText, v.TopicTitle)
	default:
		return "Assignment failed validation."
	}
}

// Validate runs the submission rules shared by the composer and the ingestion
// endpoint and returns the first violation found, or nil when the draft is
// submittable. The scan order is fixed: course selection, topic list, then
// each topic and its questions in order, so the same draft always reports the
// same violation no matter how many rules it breaks.
func Validate(courseIDs []string, topics []Topic) *Violation {
	if len(courseIDs) == 0 {
		return &Violation{Kind: NoCourseSelected, TopicIndex: -1, QuestionIndex: -1}
	}
	if len(topics) == 0 {
		return &Violation{Kind: NoTopics, TopicIndex: -1, QuestionIndex: -1}
	}

	for ti, topic := range topics {
		if strings.TrimSpace(topic.Title) == "" {
			return &Violation{Kind: EmptyTopicTitle, TopicIndex: ti, QuestionIndex: -1}
		}
		if len(topic.Questions) == 0 {
			return &Violation{Kind: TopicHasNoQuestions, TopicIndex: ti, QuestionIndex: -1, TopicTitle: topic.Title}
		}

		for qi, question := range topic.Questions {
			if strings.TrimSpace(question.Text) == "" {
				return &Violation{Kind: EmptyQuestionText, TopicIndex: ti, QuestionIndex: qi, TopicTitle: topic.Title}
			}
			if !question.Type.IsValid() {
				return &Violation{
					Kind:          InvalidQuestionType,
					TopicIndex:    ti,
					QuestionIndex: qi,
					TopicTitle:    topic.Title,
					QuestionText:  question.Text,
				}
			}
			if question.Type != QuestionTypeMCQ {
				continue
			}

			options := NormalizeOptions(question.Options)
			if len(options) < 2 {
				return &Violation{
					Kind:          TooFewOptions,
					TopicIndex:    ti,
					QuestionIndex: qi,
					TopicTitle:    topic.Title,
					QuestionText:  question.Text,
				}
			}
			if question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= len(options) {
				return &Violation{
					Kind:          InvalidCorrectAnswer,
					TopicIndex:    ti,
					QuestionIndex: qi,
					TopicTitle:    topic.Title,
					QuestionText:  question.Text,
				}
			}
		}
	}

	return nil
}
