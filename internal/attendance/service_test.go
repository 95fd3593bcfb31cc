package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/utils"
)

type fakeStore struct {
	records []models.AttendanceRecord
	inserts int
	updates int
}

func (f *fakeStore) FindByKey(_ context.Context, studentID, section string, date time.Time) (*models.AttendanceRecord, error) {
	for i := range f.records {
		r := &f.records[i]
		if r.StudentID == studentID && r.Section == section && utils.SameDay(r.Date, date) {
			found := *r
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ExistsForSectionDate(_ context.Context, section string, date time.Time) (bool, error) {
	for i := range f.records {
		if f.records[i].Section == section && utils.SameDay(f.records[i].Date, date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Insert(_ context.Context, rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	rec.ID = primitive.NewObjectID()
	rec.Date = utils.DateOnly(rec.Date)
	f.records = append(f.records, rec)
	f.inserts++
	return rec, nil
}

func (f *fakeStore) Update(_ context.Context, id primitive.ObjectID, status models.AttendanceStatus, subject string) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = status
			f.records[i].Subject = subject
			f.updates++
			return nil
		}
	}
	return errors.New("record not found")
}

var testToday = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return testToday }
	return svc
}

func submissionOn(day time.Time) Submission {
	return Submission{
		StudentID: "S001",
		Section:   "A",
		Subject:   "Math",
		Date:      day,
		Status:    "present",
	}
}

func TestResolveInsertsNewRecord(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	res, err := svc.Resolve(context.Background(), submissionOn(testToday), false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionInserted {
		t.Fatalf("action = %s, want %s", res.Action, ActionInserted)
	}
	if len(store.records) != 1 {
		t.Fatalf("stored %d records, want 1", len(store.records))
	}
	got := store.records[0]
	if got.StudentID != "S001" || got.Section != "A" || got.Status != models.StatusPresent {
		t.Fatalf("stored record %+v does not match submission", got)
	}
	if !got.Date.Equal(utils.DateOnly(testToday)) {
		t.Fatalf("stored date %v not normalized to midnight", got.Date)
	}
}

func TestResolveConflictRequiresConfirmation(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	if _, err := svc.Resolve(context.Background(), submissionOn(testToday), false); err != nil {
		t.Fatal(err)
	}
	before := store.records[0]

	sub := submissionOn(testToday)
	sub.Status = "absent"
	res, err := svc.Resolve(context.Background(), sub, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionRequiresConfirmation {
		t.Fatalf("action = %s, want %s", res.Action, ActionRequiresConfirmation)
	}
	if res.Record == nil || res.Record.ID != before.ID {
		t.Fatal("conflicting record not returned")
	}
	if store.records[0].Status != before.Status || store.updates != 0 || len(store.records) != 1 {
		t.Fatal("store changed on requires_confirmation outcome")
	}
}

func TestResolveConfirmedEditUpdates(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	if _, err := svc.Resolve(context.Background(), submissionOn(testToday), false); err != nil {
		t.Fatal(err)
	}

	sub := submissionOn(testToday)
	sub.Status = "Absent"
	sub.Subject = "Physics"
	res, err := svc.Resolve(context.Background(), sub, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionUpdated {
		t.Fatalf("action = %s, want %s", res.Action, ActionUpdated)
	}
	if len(store.records) != 1 {
		t.Fatalf("stored %d records, want 1 (no duplicate on edit)", len(store.records))
	}
	if store.records[0].Status != models.StatusAbsent || store.records[0].Subject != "Physics" {
		t.Fatalf("record not overwritten: %+v", store.records[0])
	}
}

func TestResolvePastDateRejected(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	res, err := svc.Resolve(context.Background(), submissionOn(testToday.AddDate(0, 0, -3)), false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionRejectedPastDate {
		t.Fatalf("action = %s, want %s", res.Action, ActionRejectedPastDate)
	}
	if len(store.records) != 0 {
		t.Fatal("write occurred on past-date rejection")
	}
}

func TestResolvePastDateEditAllowed(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	past := testToday.AddDate(0, 0, -3)
	store.records = append(store.records, models.AttendanceRecord{
		ID:        primitive.NewObjectID(),
		StudentID: "S001",
		Section:   "A",
		Subject:   "Math",
		Date:      utils.DateOnly(past),
		Status:    models.StatusAbsent,
	})

	res, err := svc.Resolve(context.Background(), submissionOn(past), true)
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionUpdated {
		t.Fatalf("action = %s, want %s (editing an existing past record is allowed)", res.Action, ActionUpdated)
	}
	if store.records[0].Status != models.StatusPresent {
		t.Fatal("existing past record not updated")
	}
}

func TestResolveValidation(t *testing.T) {
	svc := newTestService(&fakeStore{})

	cases := []struct {
		name string
		sub  Submission
	}{
		{"missing student", Submission{Section: "A", Subject: "Math", Date: testToday, Status: "present"}},
		{"missing date", Submission{StudentID: "S001", Section: "A", Subject: "Math", Status: "present"}},
		{"bad status", Submission{StudentID: "S001", Section: "A", Subject: "Math", Date: testToday, Status: "late"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Resolve(context.Background(), tc.sub, false)
			var validation *apperr.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestResolveBatchGatesWholeRoster(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	// one stored record for the section+date is enough to gate the batch,
	// even for students with no record of their own
	if _, err := svc.Resolve(context.Background(), submissionOn(testToday), false); err != nil {
		t.Fatal(err)
	}

	entries := []RosterEntry{
		{StudentID: "S001", Status: "absent"},
		{StudentID: "S002", Status: "present"},
	}
	result, err := svc.ResolveBatch(context.Background(), "A", "Math", testToday, entries, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionRequiresConfirmation {
		t.Fatalf("action = %s, want %s", result.Action, ActionRequiresConfirmation)
	}
	if len(result.Resolutions) != 0 || store.updates != 0 || len(store.records) != 1 {
		t.Fatal("batch wrote records without confirmation")
	}

	result, err = svc.ResolveBatch(context.Background(), "A", "Math", testToday, entries, true)
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionUpdated {
		t.Fatalf("confirmed batch action = %s, want %s", result.Action, ActionUpdated)
	}
	if len(result.Resolutions) != 2 {
		t.Fatalf("got %d resolutions, want 2", len(result.Resolutions))
	}
	if result.Resolutions[0].Action != ActionUpdated || result.Resolutions[1].Action != ActionInserted {
		t.Fatalf("resolutions = %s/%s, want updated/inserted",
			result.Resolutions[0].Action, result.Resolutions[1].Action)
	}
	if len(store.records) != 2 {
		t.Fatalf("stored %d records, want 2", len(store.records))
	}
}

func TestResolveBatchPastDateRejected(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	entries := []RosterEntry{{StudentID: "S001", Status: "present"}}
	result, err := svc.ResolveBatch(context.Background(), "A", "Math", testToday.AddDate(0, 0, -1), entries, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Action != ActionRejectedPastDate {
		t.Fatalf("action = %s, want %s", result.Action, ActionRejectedPastDate)
	}
	if len(store.records) != 0 {
		t.Fatal("write occurred on rejected batch")
	}
}
