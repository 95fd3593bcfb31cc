package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleFaculty UserRole = "faculty"
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      UserRole           `json:"role" bson:"role"`
	Name      string             `json:"name" bson:"name"`
	Section   string             `json:"section" bson:"section"`
	StudentID string             `json:"student_id,omitempty" bson:"student_id,omitempty"` // student code, e.g. roll number
	Branch    string             `json:"branch,omitempty" bson:"branch,omitempty"`
	Subject   string             `json:"subject,omitempty" bson:"subject,omitempty"` // faculty only
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
