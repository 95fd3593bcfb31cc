package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/utils"
)

// AttendanceStore persists attendance records.
type AttendanceStore struct {
	collection *mongo.Collection
}

func NewAttendanceStore(client *mongo.Client, dbName string) *AttendanceStore {
	return &AttendanceStore{
		collection: client.Database(dbName).Collection("attendance"),
	}
}

// dayRange matches any timestamp on the same calendar day, so records
// written with a time-of-day by an older client still match their day.
func dayRange(date time.Time) bson.M {
	day := utils.DateOnly(date)
	return bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
}

// FindByKey looks up the record for (studentID, section, date), nil if none.
func (s *AttendanceStore) FindByKey(ctx context.Context, studentID, section string, date time.Time) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.collection.FindOne(ctx, bson.M{
		"student_id": studentID,
		"section":    section,
		"date":       dayRange(date),
	}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ExistsForSectionDate reports whether any record exists for the section on
// the given day.
func (s *AttendanceStore) ExistsForSectionDate(ctx context.Context, section string, date time.Time) (bool, error) {
	n, err := s.collection.CountDocuments(ctx, bson.M{
		"section": section,
		"date":    dayRange(date),
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert writes a new record, normalizing the date to UTC midnight.
func (s *AttendanceStore) Insert(ctx context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	rec.ID = primitive.NewObjectID()
	rec.Date = utils.DateOnly(rec.Date)
	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return models.AttendanceRecord{}, err
	}
	return rec, nil
}

// Update overwrites status and subject on an existing record.
func (s *AttendanceStore) Update(ctx context.Context, id primitive.ObjectID, status models.AttendanceStatus, subject string) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "subject": subject},
	})
	return err
}

// ListFilter narrows List; zero values are ignored.
type ListFilter struct {
	StudentID string
	Section   string
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// List returns records matching the filter.
func (s *AttendanceStore) List(ctx context.Context, f ListFilter) ([]models.AttendanceRecord, error) {
	query := bson.M{}
	if f.StudentID != "" {
		query["student_id"] = f.StudentID
	}
	if f.Section != "" {
		query["section"] = f.Section
	}
	if f.Date != nil {
		query["date"] = dayRange(*f.Date)
	} else if f.StartDate != nil && f.EndDate != nil {
		query["date"] = bson.M{
			"$gte": utils.DateOnly(*f.StartDate),
			"$lt":  utils.DateOnly(*f.EndDate).Add(24 * time.Hour),
		}
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
