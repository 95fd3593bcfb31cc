package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord is keyed in practice by (student_id, section, date).
// The collection enforces no unique index on that tuple; keeping it unique
// is the resolver's job.
type AttendanceRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StudentID string             `json:"student_id" bson:"student_id"`
	Section   string             `json:"section" bson:"section"`
	Subject   string             `json:"subject" bson:"subject"`
	Date      time.Time          `json:"date" bson:"date"` // UTC midnight
	Status    AttendanceStatus   `json:"status" bson:"status"`
}
