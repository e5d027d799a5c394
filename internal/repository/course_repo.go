package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Insert(ctx context.Context, course *models.Course) error
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error)
}

type courseRepository struct {
	collection *mongo.Collection
}

// NewCourseRepository instantiates a mongo-backed course repository.
func NewCourseRepository(db *mongo.Database) CourseRepository {
	return &courseRepository{collection: db.Collection("courses")}
}

func (r *courseRepository) Insert(ctx context.Context, course *models.Course) error {
	result, err := r.collection.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		course.ID = id
	}
	return nil
}

func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "subjects", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	courses := make([]models.Course, 0)
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}
