package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/attendance"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/export"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/metrics"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/store"
)

const dateLayout = "2006-01-02"

type AttendanceHandler struct {
	svc       *attendance.Service
	records   *store.AttendanceStore
	users     *store.UserStore
	uploadDir string
	timeout   time.Duration
	log       *zap.Logger
}

func NewAttendanceHandler(svc *attendance.Service, records *store.AttendanceStore, users *store.UserStore, uploadDir string, timeout time.Duration, log *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		svc:       svc,
		records:   records,
		users:     users,
		uploadDir: uploadDir,
		timeout:   timeout,
		log:       log,
	}
}

// Get returns attendance records filtered by studentId, section, date or a
// startDate/endDate range.
func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ListFilter{
		StudentID: q.Get("studentId"),
		Section:   q.Get("section"),
	}
	if raw := q.Get("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}
		filter.Date = &date
	}
	if from, to := q.Get("startDate"), q.Get("endDate"); from != "" && to != "" {
		start, err1 := time.Parse(dateLayout, from)
		end, err2 := time.Parse(dateLayout, to)
		if err1 != nil || err2 != nil {
			http.Error(w, "Invalid date range", http.StatusBadRequest)
			return
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	records, err := h.records.List(ctx, filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

// Submit resolves a single submission or a whole roster. A conflicting key
// comes back as a requires_confirmation outcome with nothing written; the
// client repeats the call with confirmed=true to commit the overwrite.
func (h *AttendanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID string                   `json:"studentId"`
		Section   string                   `json:"section"`
		Subject   string                   `json:"subject"`
		Date      string                   `json:"date"`
		Status    string                   `json:"status"`
		Confirmed bool                     `json:"confirmed"`
		Entries   []attendance.RosterEntry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if len(req.Entries) > 0 {
		result, err := h.svc.ResolveBatch(ctx, req.Section, req.Subject, date, req.Entries, req.Confirmed)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
		return
	}

	resolution, err := h.svc.Resolve(ctx, attendance.Submission{
		StudentID: req.StudentID,
		Section:   req.Section,
		Subject:   req.Subject,
		Date:      date,
		Status:    req.Status,
	}, req.Confirmed)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, resolution)
}

// Upload reconciles an uploaded attendance CSV against the store. The
// temporary file is removed on every path.
func (h *AttendanceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}
	section := r.FormValue("section")
	subject := r.FormValue("subject")
	rawDate := r.FormValue("date")
	if section == "" || rawDate == "" || subject == "" {
		http.Error(w, "Section, date, and subject are required", http.StatusBadRequest)
		return
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("csvFile")
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	tmpPath, err := h.saveTemp(file)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	defer os.Remove(tmpPath)

	src, err := os.Open(tmpPath)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	defer src.Close()

	rows, err := newCSVRowReader(src)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	written, err := h.svc.ReconcileCSV(ctx, rows, section, date, subject)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	metrics.BulkRowsImported.Add(float64(len(written)))
	if written == nil {
		written = []models.AttendanceRecord{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"msg":               "Attendance updated successfully",
		"updatedAttendance": written,
	})
}

func (h *AttendanceHandler) saveTemp(src io.Reader) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(h.uploadDir, "import-*.csv")
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// Export streams an xlsx sheet of attendance for a section and date range.
func (h *AttendanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	section := q.Get("section")
	if section == "" {
		http.Error(w, "Section is required", http.StatusBadRequest)
		return
	}
	filter := store.ListFilter{Section: section}
	if from, to := q.Get("startDate"), q.Get("endDate"); from != "" && to != "" {
		start, err1 := time.Parse(dateLayout, from)
		end, err2 := time.Parse(dateLayout, to)
		if err1 != nil || err2 != nil {
			http.Error(w, "Invalid date range", http.StatusBadRequest)
			return
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	records, err := h.records.List(ctx, filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	students, err := h.users.ListStudents(ctx, section)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.StudentID] = s.Name
	}

	workbook, err := export.AttendanceWorkbook(records, names)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance-`+section+`.xlsx"`)
	if err := workbook.Write(w); err != nil {
		h.log.Warn("failed to stream export", zap.Error(err))
	}
}
