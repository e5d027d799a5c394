package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is an offering students enrol in. Assignments reference courses by
// id; courses are immutable within the assignment workflow.
type Course struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subjects   string             `bson:"subjects" json:"subjects"`
	Duration   string             `bson:"duration" json:"duration"`
	CourseFees int                `bson:"courseFees" json:"courseFees"`
	Type       string             `bson:"type,omitempty" json:"type,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
