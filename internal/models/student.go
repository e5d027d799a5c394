package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student roles. Staff accounts come from configuration, not this collection.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Student is one enrolled learner. UID is the login identifier and is stored
// upper-cased so lookups are case-insensitive.
type Student struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	UID                 string             `bson:"uid" json:"uid"`
	Password            string             `bson:"password" json:"-"`
	Group               string             `bson:"group,omitempty" json:"group,omitempty"`
	Subjects            []string           `bson:"subjects" json:"subjects"`
	Phone               string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address             string             `bson:"address,omitempty" json:"address,omitempty"`
	RegistrationFeePaid bool               `bson:"registrationFeePaid" json:"registrationFeePaid"`
	ProfilePicture      string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
