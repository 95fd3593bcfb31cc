// Package leave implements leave request fan-out and aggregation: one
// student submission addressed to N faculty becomes N independent records,
// collapsed back into a single aggregate status for the student's view.
package leave

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

// Users resolves user ids for validation and display names.
type Users interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Store is the leave request persistence the service needs.
type Store interface {
	Insert(ctx context.Context, req models.LeaveRequest) (models.LeaveRequest, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error)
	ByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.LeaveRequest, error)
	ByFaculty(ctx context.Context, facultyID primitive.ObjectID) ([]models.LeaveRequest, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.LeaveStatus) error
}

// Notifier delivers decision notifications. Implementations must be safe
// for concurrent use.
type Notifier interface {
	Send(to, subject, body string) error
}

// Service coordinates leave submission, aggregation and faculty decisions.
type Service struct {
	users    Users
	store    Store
	notifier Notifier

	// removeFile discards an uploaded proof artifact; swapped in tests.
	removeFile func(string) error
	now        func() time.Time
}

func NewService(users Users, store Store, notifier Notifier) *Service {
	return &Service{
		users:      users,
		store:      store,
		notifier:   notifier,
		removeFile: os.Remove,
		now:        time.Now,
	}
}

// SubmitInput is one logical leave request addressed to one or more faculty.
type SubmitInput struct {
	StudentID   primitive.ObjectID
	StudentCode string
	Section     string
	Reason      string
	FromDate    time.Time
	ToDate      time.Time
	Proof       string // stored path of the uploaded proof, may be empty
	FacultyIDs  []primitive.ObjectID
}

// Submit validates the request and fans it out into one record per faculty,
// all sharing a logical request id and identical content but each with its
// own pending status. Every failure path discards the uploaded proof so no
// orphaned file is left behind.
func (s *Service) Submit(ctx context.Context, in SubmitInput) ([]models.LeaveRequest, error) {
	keepProof := false
	defer func() {
		if !keepProof {
			s.discardProof(in.Proof)
		}
	}()

	if in.Reason == "" || in.FromDate.IsZero() || in.ToDate.IsZero() {
		return nil, apperr.Validation("reason, from date and to date are required")
	}
	if in.ToDate.Before(in.FromDate) {
		return nil, apperr.Validation("to date must not be before from date")
	}

	student, err := s.users.FindByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil || student.Role != models.RoleStudent {
		return nil, apperr.NotFound("student not found")
	}
	if student.StudentID != in.StudentCode {
		return nil, apperr.Validation("student id does not match our records")
	}
	if len(in.FacultyIDs) == 0 {
		return nil, apperr.Validation("at least one faculty member must be selected")
	}
	for _, id := range in.FacultyIDs {
		faculty, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if faculty == nil || faculty.Role != models.RoleFaculty {
			return nil, apperr.NotFound(fmt.Sprintf("faculty %s not found", id.Hex()))
		}
	}

	requestID := uuid.NewString()
	createdAt := s.now().UTC()
	created := make([]models.LeaveRequest, 0, len(in.FacultyIDs))
	for _, facultyID := range in.FacultyIDs {
		req, err := s.store.Insert(ctx, models.LeaveRequest{
			RequestID:   requestID,
			StudentID:   in.StudentID,
			StudentCode: in.StudentCode,
			StudentName: student.Name,
			Section:     in.Section,
			FacultyID:   facultyID,
			Reason:      in.Reason,
			FromDate:    in.FromDate,
			ToDate:      in.ToDate,
			Proof:       in.Proof,
			Status:      models.LeavePending,
			CreatedAt:   createdAt,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, req)
	}

	keepProof = true
	return created, nil
}

func (s *Service) discardProof(path string) {
	if path == "" {
		return
	}
	// best effort; the file may already be gone
	_ = s.removeFile(path)
}
