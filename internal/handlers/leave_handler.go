package handlers

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/leave"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/middleware"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

type LeaveHandler struct {
	svc       *leave.Service
	uploadDir string
	timeout   time.Duration
	log       *zap.Logger
}

func NewLeaveHandler(svc *leave.Service, uploadDir string, timeout time.Duration, log *zap.Logger) *LeaveHandler {
	return &LeaveHandler{svc: svc, uploadDir: uploadDir, timeout: timeout, log: log}
}

// Submit accepts a student's leave request (multipart, with an optional
// proof document) and fans it out to the addressed faculty members.
func (h *LeaveHandler) Submit(w http.ResponseWriter, r *http.Request) {
	studentID, ok := actingUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}

	fromDate, err1 := time.Parse(dateLayout, r.FormValue("fromDate"))
	toDate, err2 := time.Parse(dateLayout, r.FormValue("toDate"))
	if err1 != nil || err2 != nil {
		http.Error(w, "Invalid from/to date", http.StatusBadRequest)
		return
	}

	facultyIDs, err := parseFacultyIDs(r.Form["facultyIds"])
	if err != nil {
		http.Error(w, "Invalid faculty ID", http.StatusBadRequest)
		return
	}

	proofPath := ""
	if file, header, err := r.FormFile("proof"); err == nil {
		defer file.Close()
		proofPath, err = h.saveProof(file, header.Filename)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	created, err := h.svc.Submit(ctx, leave.SubmitInput{
		StudentID:   studentID,
		StudentCode: r.FormValue("studentCode"),
		Section:     r.FormValue("section"),
		Reason:      r.FormValue("reason"),
		FromDate:    fromDate,
		ToDate:      toDate,
		Proof:       proofPath,
		FacultyIDs:  facultyIDs,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// parseFacultyIDs accepts repeated facultyIds fields, each holding one hex
// id or a comma-separated list.
func parseFacultyIDs(values []string) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := primitive.ObjectIDFromHex(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (h *LeaveHandler) saveProof(src multipart.File, filename string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Get returns leave requests for the acting user: students get the
// aggregated per-logical-request view, faculty get their own raw copies.
func (h *LeaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	role, _ := middleware.Role(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if role == string(models.RoleFaculty) {
		requests, err := h.svc.FacultyView(ctx, userID)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		if requests == nil {
			requests = []models.LeaveRequest{}
		}
		respondJSON(w, http.StatusOK, requests)
		return
	}

	aggregated, err := h.svc.StudentView(ctx, userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if aggregated == nil {
		aggregated = []leave.AggregatedRequest{}
	}
	respondJSON(w, http.StatusOK, aggregated)
}

// Decide records the acting faculty member's approval or rejection of their
// copy of a leave request.
func (h *LeaveHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid leave request ID", http.StatusBadRequest)
		return
	}
	facultyID, ok := actingUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	updated, err := h.svc.Decide(ctx, id, facultyID, models.LeaveStatus(req.Status))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
