package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ScheduleEntry struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FacultyID primitive.ObjectID `json:"faculty_id" bson:"faculty_id"`
	Day       string             `json:"day" bson:"day"`   // e.g. "Monday"
	Time      string             `json:"time" bson:"time"` // free text, e.g. "9:00 AM - 10:00 AM"
	Subject   string             `json:"subject" bson:"subject"`
	Section   string             `json:"section" bson:"section"`
}
