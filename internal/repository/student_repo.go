package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
)

// ProfilePatch carries the optional self-service profile updates. Nil fields
// are left untouched.
type ProfilePatch struct {
	Password       *string
	ProfilePicture *string
}

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	Insert(ctx context.Context, student *models.Student) error
	List(ctx context.Context) ([]models.Student, error)
	GetByUID(ctx context.Context, uid string) (models.Student, error)
	UpdateProfile(ctx context.Context, uid string, patch ProfilePatch) error
}

type studentRepository struct {
	collection *mongo.Collection
}

// NewStudentRepository instantiates a mongo-backed student repository.
func NewStudentRepository(db *mongo.Database) StudentRepository {
	return &studentRepository{collection: db.Collection("students")}
}

func (r *studentRepository) Insert(ctx context.Context, student *models.Student) error {
	result, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		student.ID = id
	}
	return nil
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := make([]models.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) GetByUID(ctx context.Context, uid string) (models.Student, error) {
	var student models.Student
	err := r.collection.FindOne(ctx, bson.M{"uid": uid}).Decode(&student)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) UpdateProfile(ctx context.Context, uid string, patch ProfilePatch) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if patch.ProfilePicture != nil {
		set["profilePicture"] = *patch.ProfilePicture
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
