package handlers

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/attendance"
)

func readAll(t *testing.T, r attendance.RowReader) []attendance.Row {
	t.Helper()
	var rows []attendance.Row
	for {
		row, err := r.Next()
		if errors.Is(err, io.EOF) {
			return rows
		}
		if err != nil {
			t.Fatal(err)
		}
		rows = append(rows, row)
	}
}

func TestCSVRowReaderMapsColumnsByHeader(t *testing.T) {
	src := strings.NewReader(
		"Status,studentId,DATE\n" +
			"present,S001,2025-03-10\n" +
			"absent,S002,2025-03-10\n")
	r, err := newCSVRowReader(src)
	if err != nil {
		t.Fatal(err)
	}
	rows := readAll(t, r)
	if len(rows) != 2 {
		t.Fatalf("read %d rows, want 2", len(rows))
	}
	if rows[0].StudentID != "S001" || rows[0].Date != "2025-03-10" || rows[0].Status != "present" {
		t.Fatalf("columns mapped wrong: %+v", rows[0])
	}
}

func TestCSVRowReaderYieldsShortLinesBlank(t *testing.T) {
	src := strings.NewReader(
		"studentId,date,status\n" +
			"S001\n" +
			"S002,2025-03-10,absent\n")
	r, err := newCSVRowReader(src)
	if err != nil {
		t.Fatal(err)
	}
	rows := readAll(t, r)
	if len(rows) != 2 {
		t.Fatalf("read %d rows, want 2", len(rows))
	}
	if rows[0] != (attendance.Row{}) {
		t.Fatalf("short line not yielded blank: %+v", rows[0])
	}
	if rows[1].StudentID != "S002" {
		t.Fatalf("full line lost after short one: %+v", rows[1])
	}
}

func TestCSVRowReaderRejectsMissingColumns(t *testing.T) {
	src := strings.NewReader("studentId,status\nS001,present\n")
	_, err := newCSVRowReader(src)
	var validation *apperr.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}
