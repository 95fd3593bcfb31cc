package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest is one faculty member's copy of a logical leave request.
// A submission addressed to N faculty produces N records sharing RequestID,
// reason, dates and proof; each copy carries its own status and is decided
// independently by its faculty.
type LeaveRequest struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequestID   string             `json:"request_id" bson:"request_id"` // shared by all fan-out copies
	StudentID   primitive.ObjectID `json:"student_id" bson:"student_id"`
	StudentCode string             `json:"student_code" bson:"student_code"`
	StudentName string             `json:"student_name" bson:"student_name"`
	Section     string             `json:"section" bson:"section"`
	FacultyID   primitive.ObjectID `json:"faculty_id" bson:"faculty_id"`
	Reason      string             `json:"reason" bson:"reason"`
	FromDate    time.Time          `json:"from_date" bson:"from_date"`
	ToDate      time.Time          `json:"to_date" bson:"to_date"`
	Proof       string             `json:"proof,omitempty" bson:"proof,omitempty"` // stored file path
	Status      LeaveStatus        `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
