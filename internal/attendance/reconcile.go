package attendance

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/utils"
)

// Row is one parsed line of an imported attendance sheet.
type Row struct {
	StudentID string
	Date      string
	Status    string
}

// RowReader yields rows one at a time and returns io.EOF when the source is
// exhausted. It is a single pass; re-reading requires re-opening the source.
type RowReader interface {
	Next() (Row, error)
}

// ReconcileCSV streams rows through the matcher/resolver in forced
// update-or-insert mode: bulk import is an explicit trusted operation, so
// the confirmation gate and the past-date rule do not apply. Rows with a
// missing field, a date other than the target date, or an unknown status are
// skipped without error; one bad row never aborts the batch. Returns every
// record written or updated.
func (s *Service) ReconcileCSV(ctx context.Context, rows RowReader, section string, date time.Time, subject string) ([]models.AttendanceRecord, error) {
	if section == "" || subject == "" {
		return nil, apperr.Validation("section and subject are required")
	}
	if date.IsZero() {
		return nil, apperr.Validation("date is required")
	}
	target := utils.DateOnly(date)

	var written []models.AttendanceRecord
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		studentID := strings.TrimSpace(row.StudentID)
		if studentID == "" {
			continue
		}
		rowDay, ok := parseDay(row.Date)
		if !ok || !rowDay.Equal(target) {
			continue
		}
		status, ok := parseStatus(row.Status)
		if !ok {
			continue
		}

		existing, err := s.store.FindByKey(ctx, studentID, section, target)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := s.store.Update(ctx, existing.ID, status, subject); err != nil {
				return nil, err
			}
			existing.Status = status
			existing.Subject = subject
			written = append(written, *existing)
			continue
		}

		rec, err := s.store.Insert(ctx, models.AttendanceRecord{
			StudentID: studentID,
			Section:   section,
			Subject:   subject,
			Date:      target,
			Status:    status,
		})
		if err != nil {
			return nil, err
		}
		written = append(written, rec)
	}
	return written, nil
}

func parseDay(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return utils.DateOnly(t), true
		}
	}
	return time.Time{}, false
}
