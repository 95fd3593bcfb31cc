package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

// ScheduleStore persists class schedule entries.
type ScheduleStore struct {
	collection *mongo.Collection
}

func NewScheduleStore(client *mongo.Client, dbName string) *ScheduleStore {
	return &ScheduleStore{
		collection: client.Database(dbName).Collection("schedules"),
	}
}

// List returns schedule entries, optionally restricted to one section.
func (s *ScheduleStore) List(ctx context.Context, section string) ([]models.ScheduleEntry, error) {
	query := bson.M{}
	if section != "" {
		query["section"] = section
	}
	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.ScheduleEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert writes a new schedule entry.
func (s *ScheduleStore) Insert(ctx context.Context, entry models.ScheduleEntry) (models.ScheduleEntry, error) {
	entry.ID = primitive.NewObjectID()
	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		return models.ScheduleEntry{}, err
	}
	return entry, nil
}

// Update overwrites the mutable fields of an entry. It reports whether a
// matching entry existed.
func (s *ScheduleStore) Update(ctx context.Context, id primitive.ObjectID, entry models.ScheduleEntry) (bool, error) {
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"day":     entry.Day,
			"time":    entry.Time,
			"subject": entry.Subject,
			"section": entry.Section,
		},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes an entry. It reports whether the entry existed.
func (s *ScheduleStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
