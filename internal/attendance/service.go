// Package attendance implements the attendance reconciliation workflow:
// deciding whether a submission is a fresh insert, an edit of an existing
// record, or a conflict needing a confirmation round-trip, plus the CSV
// bulk-import path.
package attendance

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/utils"
)

// Store is the attendance persistence the service needs.
type Store interface {
	FindByKey(ctx context.Context, studentID, section string, date time.Time) (*models.AttendanceRecord, error)
	ExistsForSectionDate(ctx context.Context, section string, date time.Time) (bool, error)
	Insert(ctx context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error)
	Update(ctx context.Context, id primitive.ObjectID, status models.AttendanceStatus, subject string) error
}

// Action is the outcome of resolving a submission.
type Action string

const (
	ActionInserted             Action = "inserted"
	ActionUpdated              Action = "updated"
	ActionRequiresConfirmation Action = "requires_confirmation"
	ActionRejectedPastDate     Action = "rejected_past_date"
)

// Submission is one student's attendance for one day.
type Submission struct {
	StudentID string
	Section   string
	Subject   string
	Date      time.Time
	Status    string
}

// Resolution reports what Resolve did. Record is set on inserted and
// updated outcomes, and carries the conflicting record on
// requires_confirmation.
type Resolution struct {
	Action Action                   `json:"action"`
	Record *models.AttendanceRecord `json:"record,omitempty"`
}

// Service coordinates attendance upserts and bulk reconciliation.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Resolve decides and applies the outcome for one submission. The
// requires_confirmation and rejected_past_date outcomes perform no write;
// the caller is expected to repeat the call with confirmed=true after the
// user agrees to overwrite.
func (s *Service) Resolve(ctx context.Context, sub Submission, confirmed bool) (Resolution, error) {
	if sub.StudentID == "" || sub.Section == "" || sub.Subject == "" {
		return Resolution{}, apperr.Validation("student id, section and subject are required")
	}
	if sub.Date.IsZero() {
		return Resolution{}, apperr.Validation("date is required")
	}
	status, ok := parseStatus(sub.Status)
	if !ok {
		return Resolution{}, apperr.Validation("status must be present or absent")
	}
	day := utils.DateOnly(sub.Date)

	existing, err := s.store.FindByKey(ctx, sub.StudentID, sub.Section, day)
	if err != nil {
		return Resolution{}, err
	}

	// First-time backfill for past dates is disallowed; editing a record
	// that already exists on a past date is fine.
	if existing == nil && !confirmed && s.isPast(day) {
		return Resolution{Action: ActionRejectedPastDate}, nil
	}

	if existing != nil {
		if !confirmed {
			return Resolution{Action: ActionRequiresConfirmation, Record: existing}, nil
		}
		if err := s.store.Update(ctx, existing.ID, status, sub.Subject); err != nil {
			return Resolution{}, err
		}
		existing.Status = status
		existing.Subject = sub.Subject
		return Resolution{Action: ActionUpdated, Record: existing}, nil
	}

	rec, err := s.store.Insert(ctx, models.AttendanceRecord{
		StudentID: sub.StudentID,
		Section:   sub.Section,
		Subject:   sub.Subject,
		Date:      day,
		Status:    status,
	})
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Action: ActionInserted, Record: &rec}, nil
}

// RosterEntry is one student's status within a whole-section submission.
type RosterEntry struct {
	StudentID string `json:"studentId"`
	Status    string `json:"status"`
}

// BatchResult reports a roster submission. On requires_confirmation or
// rejected_past_date nothing was written and Resolutions is empty.
type BatchResult struct {
	Action      Action       `json:"action"`
	Resolutions []Resolution `json:"resolutions,omitempty"`
}

// ResolveBatch submits attendance for a whole roster on one date. The
// existence check runs once for the section+date: if any record exists and
// the caller has not confirmed, the entire batch is routed through the
// confirmation path so a roster is never partially overwritten in silence.
func (s *Service) ResolveBatch(ctx context.Context, section, subject string, date time.Time, entries []RosterEntry, confirmed bool) (BatchResult, error) {
	if section == "" || subject == "" {
		return BatchResult{}, apperr.Validation("section and subject are required")
	}
	if date.IsZero() {
		return BatchResult{}, apperr.Validation("date is required")
	}
	if len(entries) == 0 {
		return BatchResult{}, apperr.Validation("no attendance entries submitted")
	}
	day := utils.DateOnly(date)

	exists, err := s.store.ExistsForSectionDate(ctx, section, day)
	if err != nil {
		return BatchResult{}, err
	}
	if !exists && !confirmed && s.isPast(day) {
		return BatchResult{Action: ActionRejectedPastDate}, nil
	}
	if exists && !confirmed {
		return BatchResult{Action: ActionRequiresConfirmation}, nil
	}

	resolutions := make([]Resolution, 0, len(entries))
	for _, entry := range entries {
		res, err := s.Resolve(ctx, Submission{
			StudentID: entry.StudentID,
			Section:   section,
			Subject:   subject,
			Date:      day,
			Status:    entry.Status,
		}, true)
		if err != nil {
			return BatchResult{}, err
		}
		resolutions = append(resolutions, res)
	}
	return BatchResult{Action: ActionUpdated, Resolutions: resolutions}, nil
}

func (s *Service) isPast(day time.Time) bool {
	return day.Before(utils.DateOnly(s.now()))
}

func parseStatus(raw string) (models.AttendanceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(models.StatusPresent):
		return models.StatusPresent, true
	case string(models.StatusAbsent):
		return models.StatusAbsent, true
	default:
		return "", false
	}
}
