package draft_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riteshsinghh-coder/maxbytelms/internal/draft"
)

func mcq(text string, correct int, options ...string) draft.Question {
	return draft.Question{
		Text:               text,
		Type:               draft.QuestionTypeMCQ,
		Options:            options,
		CorrectAnswerIndex: correct,
	}
}

func TestValidateOrderedFirstViolation(t *testing.T) {
	courses := []string{"course-a"}

	tests := []struct {
		name    string
		courses []string
		topics  []draft.Topic
		kind    draft.ViolationKind
		message string
	}{
		{
			name:    "no course selected",
			courses: nil,
			topics:  []draft.Topic{{Title: "Algebra", Questions: []draft.Question{mcq("Q", 0, "a", "b")}}},
			kind:    draft.NoCourseSelected,
			message: "Please select at least one course.",
		},
		{
			name:    "no topics",
			courses: courses,
			topics:  nil,
			kind:    draft.NoTopics,
			message: "Please add at least one topic.",
		},
		{
			name:    "blank topic title",
			courses: courses,
			topics:  []draft.Topic{{Title: "  "}},
			kind:    draft.EmptyTopicTitle,
			message: "Topic 1 must have a title.",
		},
		{
			name:    "topic without questions",
			courses: courses,
			topics:  []draft.Topic{{Title: "Algebra"}},
			kind:    draft.TopicHasNoQuestions,
			message: `Topic "Algebra" must have at least one question.`,
		},
		{
			name:    "blank question text",
			courses: courses,
			topics: []draft.Topic{{Title: "Algebra", Questions: []draft.Question{
				{Text: "  ", Type: draft.QuestionTypeText},
			}}},
			kind:    draft.EmptyQuestionText,
			message: `Question 1 in topic "Algebra" must have question text.`,
		},
		{
			name:    "unsupported question type",
			courses: courses,
			topics: []draft.Topic{{Title: "Algebra", Questions: []draft.Question{
				{Text: "Q", Type: "essay"},
			}}},
			kind:    draft.InvalidQuestionType,
			message: `Question "Q" in topic "Algebra" has an unsupported type.`,
		},
		{
			name:    "mcq with one usable option",
			courses: courses,
			topics: []draft.Topic{{Title: "Algebra", Questions: []draft.Question{
				mcq("Q", 0, "a", "  ", ""),
			}}},
			kind:    draft.TooFewOptions,
			message: `MCQ question "Q" in topic "Algebra" must have at least two non-empty options.`,
		},
		{
			name:    "mcq without correct answer",
			courses: courses,
			topics: []draft.Topic{{Title: "Algebra", Questions: []draft.Question{
				mcq("Q", draft.NoCorrectAnswer, "a", "b"),
			}}},
			kind:    draft.InvalidCorrectAnswer,
			message: `MCQ question "Q" in topic "Algebra" must have a valid correct answer selected.`,
		},
		{
			name:    "mcq correct answer beyond filtered options",
			courses: courses,
			topics: []draft.Topic{{Title: "Algebra", Questions: []draft.Question{
				mcq("Q", 2, "a", "b", " "),
			}}},
			kind:    draft.InvalidCorrectAnswer,
			message: `MCQ question "Q" in topic "Algebra" must have a valid correct answer selected.`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			violation := draft.Validate(tc.courses, tc.topics)
			require.NotNil(t, violation)
			require.Equal(t, tc.kind, violation.Kind)
			require.Equal(t, tc.message, violation.Message())
		})
	}
}

func TestValidateReportsEarliestViolation(t *testing.T) {
	// Both topics are broken; the scan must stop at the first.
	topics := []draft.Topic{
		{Title: "First"},
		{Title: "  "},
	}

	violation := draft.Validate([]string{"course-a"}, topics)
	require.NotNil(t, violation)
	require.Equal(t, draft.TopicHasNoQuestions, violation.Kind)
	require.Equal(t, 0, violation.TopicIndex)
}

func TestValidateCourseRuleBeforeTopicRules(t *testing.T) {
	violation := draft.Validate(nil, nil)
	require.NotNil(t, violation)
	require.Equal(t, draft.NoCourseSelected, violation.Kind)
	require.Equal(t, draft.SectionCourses, violation.Section())
}

func TestValidateAcceptsSubmittableDraft(t *testing.T) {
	topics := []draft.Topic{
		{Title: "Algebra", Questions: []draft.Question{
			mcq("2+2?", 1, "3", "4"),
			{Text: "Explain limits.", Type: draft.QuestionTypeText},
			{Text: "Reference link?", Type: draft.QuestionTypeLink},
		}},
		{Title: "Geometry", Questions: []draft.Question{
			mcq("Sides of a square?", 0, "4", " ", "5"),
		}},
	}

	require.Nil(t, draft.Validate([]string{"course-a", "course-b"}, topics))
}

func TestValidateCorrectAnswerAgainstFilteredOptions(t *testing.T) {
	// Index 1 points at the second non-empty option even though the raw slot
	// list has a blank in between.
	question := mcq("Q", 1, "a", "  ", "b")
	violation := draft.Validate([]string{"course-a"}, []draft.Topic{
		{Title: "Algebra", Questions: []draft.Question{question}},
	})
	require.Nil(t, violation)
}

func TestValidateIsDeterministic(t *testing.T) {
	topics := []draft.Topic{
		{Title: "Algebra", Questions: []draft.Question{
			{Text: "", Type: draft.QuestionTypeText},
			mcq("Q", 5, "a"),
		}},
	}

	first := draft.Validate([]string{"c"}, topics)
	for i := 0; i < 10; i++ {
		again := draft.Validate([]string{"c"}, topics)
		require.Equal(t, first, again)
	}
	require.Equal(t, draft.EmptyQuestionText, first.Kind)
}
