package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

// LeaveStore persists leave request records (one per addressed faculty).
type LeaveStore struct {
	collection *mongo.Collection
}

func NewLeaveStore(client *mongo.Client, dbName string) *LeaveStore {
	return &LeaveStore{
		collection: client.Database(dbName).Collection("leave_requests"),
	}
}

// Insert writes one fan-out copy.
func (s *LeaveStore) Insert(ctx context.Context, req models.LeaveRequest) (models.LeaveRequest, error) {
	req.ID = primitive.NewObjectID()
	if _, err := s.collection.InsertOne(ctx, req); err != nil {
		return models.LeaveRequest{}, err
	}
	return req, nil
}

// Get returns one record, nil if none.
func (s *LeaveStore) Get(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	var req models.LeaveRequest
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// ByStudent returns every copy belonging to a student, newest first.
func (s *LeaveStore) ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.LeaveRequest, error) {
	return s.find(ctx, bson.M{"student_id": studentID})
}

// ByFaculty returns the copies addressed to one faculty, newest first.
func (s *LeaveStore) ByFaculty(ctx context.Context, facultyID primitive.ObjectID) ([]models.LeaveRequest, error) {
	return s.find(ctx, bson.M{"faculty_id": facultyID})
}

func (s *LeaveStore) find(ctx context.Context, query bson.M) ([]models.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// SetStatus records a faculty decision on one copy.
func (s *LeaveStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.LeaveStatus) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status},
	})
	return err
}
