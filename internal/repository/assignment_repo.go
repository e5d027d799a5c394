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

// ErrNotFound is returned by repositories when a document does not exist.
var ErrNotFound = errors.New("document not found")

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	Insert(ctx context.Context, assignment *models.Assignment) error
	List(ctx context.Context) ([]models.Assignment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error)
	Count(ctx context.Context) (int64, error)
}

type assignmentRepository struct {
	collection *mongo.Collection
}

// NewAssignmentRepository instantiates a mongo-backed assignment repository.
func NewAssignmentRepository(db *mongo.Database) AssignmentRepository {
	return &assignmentRepository{collection: db.Collection("assignments")}
}

func (r *assignmentRepository) Insert(ctx context.Context, assignment *models.Assignment) error {
	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		assignment.ID = id
	}
	return nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assignments := make([]models.Assignment, 0)
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	var assignment models.Assignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Assignment{}, ErrNotFound
	}
	if err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
