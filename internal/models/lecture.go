package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lecture targeting modes. A subject-targeted lecture is visible to students
// enrolled in any of the listed subjects; a group-targeted lecture is visible
// to students in any of the listed groups.
const (
	TargetTypeSubject = "subject"
	TargetTypeGroup   = "group"
)

// Lecture is a published video lecture. VideoURL points at the hosted video
// or embed; Description may carry limited rich text.
type Lecture struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VideoName   string             `bson:"videoName" json:"videoName"`
	VideoURL    string             `bson:"videoURL" json:"videoURL"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetType  string             `bson:"targetType" json:"targetType"`
	TargetValue []string           `bson:"targetValue" json:"targetValue"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
