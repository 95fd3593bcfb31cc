package leave

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

// FacultyResponse is one faculty member's individual decision on a copy.
type FacultyResponse struct {
	FacultyID   primitive.ObjectID `json:"faculty_id"`
	FacultyName string             `json:"faculty_name"`
	Status      models.LeaveStatus `json:"status"`
}

// AggregatedRequest is the student-facing view of one logical request: the
// shared fields plus a single status derived from every faculty's copy.
type AggregatedRequest struct {
	RequestID        string             `json:"request_id"`
	Reason           string             `json:"reason"`
	FromDate         time.Time          `json:"from_date"`
	ToDate           time.Time          `json:"to_date"`
	Proof            string             `json:"proof,omitempty"`
	Section          string             `json:"section"`
	Status           models.LeaveStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	FacultyResponses []FacultyResponse  `json:"faculty_responses"`
}

// StudentView groups the student's fan-out copies by logical request id and
// collapses each group to one aggregate status: approved if any copy is
// approved, else rejected if any copy is rejected, else pending.
func (s *Service) StudentView(ctx context.Context, studentID primitive.ObjectID) ([]AggregatedRequest, error) {
	copies, err := s.store.ByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	names := map[primitive.ObjectID]string{}
	facultyName := func(id primitive.ObjectID) (string, error) {
		if name, ok := names[id]; ok {
			return name, nil
		}
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		name := "Unknown"
		if user != nil {
			name = user.Name
		}
		names[id] = name
		return name, nil
	}

	byRequest := map[string]int{}
	var aggregated []AggregatedRequest
	for _, c := range copies {
		name, err := facultyName(c.FacultyID)
		if err != nil {
			return nil, err
		}
		response := FacultyResponse{FacultyID: c.FacultyID, FacultyName: name, Status: c.Status}

		idx, ok := byRequest[c.RequestID]
		if !ok {
			byRequest[c.RequestID] = len(aggregated)
			aggregated = append(aggregated, AggregatedRequest{
				RequestID:        c.RequestID,
				Reason:           c.Reason,
				FromDate:         c.FromDate,
				ToDate:           c.ToDate,
				Proof:            c.Proof,
				Section:          c.Section,
				CreatedAt:        c.CreatedAt,
				FacultyResponses: []FacultyResponse{response},
			})
			continue
		}
		aggregated[idx].FacultyResponses = append(aggregated[idx].FacultyResponses, response)
	}

	for i := range aggregated {
		aggregated[i].Status = aggregateStatus(aggregated[i].FacultyResponses)
	}
	return aggregated, nil
}

// aggregateStatus applies the precedence approved > rejected > pending.
func aggregateStatus(responses []FacultyResponse) models.LeaveStatus {
	status := models.LeavePending
	for _, r := range responses {
		switch r.Status {
		case models.LeaveApproved:
			return models.LeaveApproved
		case models.LeaveRejected:
			status = models.LeaveRejected
		}
	}
	return status
}

// FacultyView returns one faculty member's own copies, unaggregated: each
// faculty acts independently on their copy.
func (s *Service) FacultyView(ctx context.Context, facultyID primitive.ObjectID) ([]models.LeaveRequest, error) {
	return s.store.ByFaculty(ctx, facultyID)
}

// Decide records a faculty decision on their copy. pending is the only
// state that accepts a decision; approved and rejected are terminal. Other
// faculty's copies of the same logical request are untouched. On success a
// notification email to the student is attempted in the background.
func (s *Service) Decide(ctx context.Context, id, facultyID primitive.ObjectID, status models.LeaveStatus) (*models.LeaveRequest, error) {
	if status != models.LeaveApproved && status != models.LeaveRejected {
		return nil, apperr.Validation("status must be approved or rejected")
	}

	req, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperr.NotFound("leave request not found")
	}
	if req.FacultyID != facultyID {
		return nil, apperr.Authorization("leave request is addressed to another faculty member")
	}
	if req.Status != models.LeavePending {
		return nil, apperr.Validation("leave request has already been decided")
	}

	if err := s.store.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	req.Status = status

	if s.notifier != nil {
		go s.notifyDecision(*req)
	}
	return req, nil
}

func (s *Service) notifyDecision(req models.LeaveRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	student, err := s.users.FindByID(ctx, req.StudentID)
	if err != nil || student == nil || student.Email == "" {
		return
	}
	faculty, err := s.users.FindByID(ctx, req.FacultyID)
	facultyName := "your faculty"
	if err == nil && faculty != nil {
		facultyName = faculty.Name
	}

	subject := fmt.Sprintf("Leave request %s", req.Status)
	body := fmt.Sprintf(
		"Hi %s,<br><br>Your leave request for %s to %s has been <b>%s</b> by %s.<br><br>Reason: %s",
		student.Name,
		req.FromDate.Format("02 Jan 2006"),
		req.ToDate.Format("02 Jan 2006"),
		req.Status,
		facultyName,
		req.Reason,
	)
	_ = s.notifier.Send(student.Email, subject, body)
}
