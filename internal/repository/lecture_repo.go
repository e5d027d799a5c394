package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
)

// LectureRepository defines persistence operations for lectures.
type LectureRepository interface {
	Insert(ctx context.Context, lecture *models.Lecture) error
	List(ctx context.Context) ([]models.Lecture, error)
	ListForStudent(ctx context.Context, group string, subjects []string) ([]models.Lecture, error)
}

type lectureRepository struct {
	collection *mongo.Collection
}

// NewLectureRepository instantiates a mongo-backed lecture repository.
func NewLectureRepository(db *mongo.Database) LectureRepository {
	return &lectureRepository{collection: db.Collection("lectures")}
}

func (r *lectureRepository) Insert(ctx context.Context, lecture *models.Lecture) error {
	result, err := r.collection.InsertOne(ctx, lecture)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		lecture.ID = id
	}
	return nil
}

func (r *lectureRepository) List(ctx context.Context) ([]models.Lecture, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lectures := make([]models.Lecture, 0)
	if err := cursor.All(ctx, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// ListForStudent returns the lectures visible to a student: subject-targeted
// lectures whose target list intersects the student's subjects, plus
// group-targeted lectures naming the student's group.
func (r *lectureRepository) ListForStudent(ctx context.Context, group string, subjects []string) ([]models.Lecture, error) {
	clauses := make([]bson.M, 0, 2)
	if len(subjects) > 0 {
		clauses = append(clauses, bson.M{
			"targetType":  models.TargetTypeSubject,
			"targetValue": bson.M{"$in": subjects},
		})
	}
	if group != "" {
		clauses = append(clauses, bson.M{
			"targetType":  models.TargetTypeGroup,
			"targetValue": group,
		})
	}
	if len(clauses) == 0 {
		return []models.Lecture{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"$or": clauses}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lectures := make([]models.Lecture, 0)
	if err := cursor.All(ctx, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}
