package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/middleware"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/store"
)

type ScheduleHandler struct {
	schedules *store.ScheduleStore
	timeout   time.Duration
	log       *zap.Logger
}

func NewScheduleHandler(schedules *store.ScheduleStore, timeout time.Duration, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, timeout: timeout, log: log}
}

type scheduleRequest struct {
	Day     string `json:"day"`
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Section string `json:"section"`
}

func (req scheduleRequest) validate() string {
	if req.Day == "" || req.Time == "" || req.Subject == "" || req.Section == "" {
		return "Day, time, subject and section are required"
	}
	return ""
}

// Get lists schedule entries, optionally for one section.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	entries, err := h.schedules.List(ctx, r.URL.Query().Get("section"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Create adds a schedule entry owned by the acting faculty member.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	facultyID, ok := actingUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	entry, err := h.schedules.Insert(ctx, models.ScheduleEntry{
		FacultyID: facultyID,
		Day:       req.Day,
		Time:      req.Time,
		Subject:   req.Subject,
		Section:   req.Section,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// Update overwrites a schedule entry.
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid schedule ID", http.StatusBadRequest)
		return
	}
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	found, err := h.schedules.Update(ctx, id, models.ScheduleEntry{
		Day:     req.Day,
		Time:    req.Time,
		Subject: req.Subject,
		Section: req.Section,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"msg": "Schedule updated"})
}

// Delete removes a schedule entry.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid schedule ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	found, err := h.schedules.Delete(ctx, id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"msg": "Schedule deleted"})
}

// actingUser returns the authenticated user's object id.
func actingUser(r *http.Request) (primitive.ObjectID, bool) {
	raw, ok := middleware.UserID(r.Context())
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
