package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Announcement struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	FacultyID primitive.ObjectID `json:"faculty_id" bson:"faculty_id"` // owner; only the owner may edit or delete
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
