package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

// AnnouncementStore is the persistence the handler needs; implemented by
// store.AnnouncementStore.
type AnnouncementStore interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Announcement, error)
	Insert(ctx context.Context, a models.Announcement) (models.Announcement, error)
	Update(ctx context.Context, id primitive.ObjectID, title, content string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AnnouncementHandler struct {
	store   AnnouncementStore
	timeout time.Duration
	log     *zap.Logger
}

func NewAnnouncementHandler(store AnnouncementStore, timeout time.Duration, log *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{store: store, timeout: timeout, log: log}
}

// Get lists all announcements, newest first.
func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	announcements, err := h.store.List(ctx)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}
	respondJSON(w, http.StatusOK, announcements)
}

// Create posts a new announcement owned by the acting faculty member.
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Content == "" {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}
	facultyID, ok := actingUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	announcement, err := h.store.Insert(ctx, models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		FacultyID: facultyID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, announcement)
}

// Update edits an announcement; only its owner may do so.
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
		return
	}
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Content == "" {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.authorizeOwner(ctx, r, id); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.store.Update(ctx, id, req.Title, req.Content); err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"msg": "Announcement updated"})
}

// Delete removes an announcement; only its owner may do so.
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.authorizeOwner(ctx, r, id); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.store.Delete(ctx, id); err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"msg": "Announcement deleted"})
}

func (h *AnnouncementHandler) authorizeOwner(ctx context.Context, r *http.Request, id primitive.ObjectID) error {
	facultyID, ok := actingUser(r)
	if !ok {
		return apperr.Authorization("not authenticated")
	}
	announcement, err := h.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if announcement == nil {
		return apperr.NotFound("announcement not found")
	}
	if announcement.FacultyID != facultyID {
		return apperr.Authorization("only the announcement owner may modify it")
	}
	return nil
}
