package export

import (
	"testing"
	"time"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

func TestAttendanceWorkbook(t *testing.T) {
	records := []models.AttendanceRecord{
		{StudentID: "S001", Section: "A", Subject: "Math",
			Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), Status: models.StatusPresent},
		{StudentID: "S002", Section: "A", Subject: "Math",
			Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), Status: models.StatusAbsent},
	}
	names := map[string]string{"S001": "Asha", "S002": "Vikram"}

	f, err := AttendanceWorkbook(records, names)
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.GetCellValue("Attendance", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Student ID" {
		t.Fatalf("A1 = %q, want header", got)
	}

	name, err := f.GetCellValue("Attendance", "B3")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Vikram" {
		t.Fatalf("B3 = %q, want Vikram", name)
	}
	status, err := f.GetCellValue("Attendance", "F2")
	if err != nil {
		t.Fatal(err)
	}
	if status != "present" {
		t.Fatalf("F2 = %q, want present", status)
	}
}
