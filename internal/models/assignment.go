package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentQuestion is one gradable item inside an assignment topic. The
// variant is discriminated by Type; Options and CorrectAnswerIndex are only
// present for mcq questions. The persisted shape carries no client-local ids.
type AssignmentQuestion struct {
	QuestionText       string   `bson:"questionText" json:"questionText"`
	Type               string   `bson:"type" json:"type"`
	Options            []string `bson:"options,omitempty" json:"options,omitempty"`
	CorrectAnswerIndex *int     `bson:"correctAnswerIndex,omitempty" json:"correctAnswerIndex,omitempty"`
}

// AssignmentTopic groups the questions of one topic in authoring order.
type AssignmentTopic struct {
	Title     string               `bson:"title" json:"title"`
	Questions []AssignmentQuestion `bson:"questions" json:"questions"`
}

// Assignment is the root document produced by a successful submission. It is
// created once, atomically, and owns its topics exclusively.
type Assignment struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SelectedCourseIDs []primitive.ObjectID `bson:"selectedCourseIds" json:"selectedCourseIds"`
	Topics            []AssignmentTopic    `bson:"topics" json:"topics"`
	CreatedBy         string               `bson:"createdBy" json:"createdBy"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// QuestionCount returns the total number of questions across all topics.
func (a Assignment) QuestionCount() int {
	count := 0
	for _, topic := range a.Topics {
		count += len(topic.Questions)
	}
	return count
}
