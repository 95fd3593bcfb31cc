package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

// AnnouncementStore persists announcements.
type AnnouncementStore struct {
	collection *mongo.Collection
}

func NewAnnouncementStore(client *mongo.Client, dbName string) *AnnouncementStore {
	return &AnnouncementStore{
		collection: client.Database(dbName).Collection("announcements"),
	}
}

// List returns all announcements, newest first.
func (s *AnnouncementStore) List(ctx context.Context) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// Get returns one announcement, nil if none.
func (s *AnnouncementStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	var a models.Announcement
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Insert writes a new announcement.
func (s *AnnouncementStore) Insert(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	if _, err := s.collection.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// Update overwrites title and content.
func (s *AnnouncementStore) Update(ctx context.Context, id primitive.ObjectID, title, content string) error {
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"title": title, "content": content},
	})
	return err
}

// Delete removes an announcement.
func (s *AnnouncementStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
