package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/middleware"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

type fakeAnnouncements struct {
	items   []models.Announcement
	updates int
	deletes int
}

func (f *fakeAnnouncements) List(context.Context) ([]models.Announcement, error) {
	return f.items, nil
}

func (f *fakeAnnouncements) Get(_ context.Context, id primitive.ObjectID) (*models.Announcement, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			found := f.items[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAnnouncements) Insert(_ context.Context, a models.Announcement) (models.Announcement, error) {
	a.ID = primitive.NewObjectID()
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeAnnouncements) Update(_ context.Context, id primitive.ObjectID, title, content string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Title = title
			f.items[i].Content = content
			f.updates++
		}
	}
	return nil
}

func (f *fakeAnnouncements) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.deletes++
			return nil
		}
	}
	return nil
}

func announcementRequest(method, path, body string, userID primitive.ObjectID, vars map[string]string) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r = r.WithContext(middleware.WithUser(r.Context(), userID.Hex(), "faculty"))
	return mux.SetURLVars(r, vars)
}

func TestAnnouncementNonOwnerForbidden(t *testing.T) {
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	store := &fakeAnnouncements{items: []models.Announcement{{
		ID:        primitive.NewObjectID(),
		Title:     "Exam schedule",
		Content:   "Midterms start Monday",
		FacultyID: owner,
	}}}
	h := NewAnnouncementHandler(store, time.Second, zap.NewNop())
	id := store.items[0].ID.Hex()
	vars := map[string]string{"id": id}

	w := httptest.NewRecorder()
	h.Update(w, announcementRequest(http.MethodPut, "/api/announcements/"+id,
		`{"title":"Hijacked","content":"x"}`, intruder, vars))
	if w.Code != http.StatusForbidden {
		t.Fatalf("update status = %d, want 403", w.Code)
	}
	if store.items[0].Title != "Exam schedule" || store.updates != 0 {
		t.Fatal("announcement changed by non-owner")
	}

	w = httptest.NewRecorder()
	h.Delete(w, announcementRequest(http.MethodDelete, "/api/announcements/"+id, "", intruder, vars))
	if w.Code != http.StatusForbidden {
		t.Fatalf("delete status = %d, want 403", w.Code)
	}
	if len(store.items) != 1 || store.deletes != 0 {
		t.Fatal("announcement deleted by non-owner")
	}
}

func TestAnnouncementOwnerMayEdit(t *testing.T) {
	owner := primitive.NewObjectID()
	store := &fakeAnnouncements{items: []models.Announcement{{
		ID:        primitive.NewObjectID(),
		Title:     "Old title",
		Content:   "Old content",
		FacultyID: owner,
	}}}
	h := NewAnnouncementHandler(store, time.Second, zap.NewNop())
	id := store.items[0].ID.Hex()
	vars := map[string]string{"id": id}

	w := httptest.NewRecorder()
	h.Update(w, announcementRequest(http.MethodPut, "/api/announcements/"+id,
		`{"title":"New title","content":"New content"}`, owner, vars))
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", w.Code)
	}
	if store.items[0].Title != "New title" {
		t.Fatal("owner edit not applied")
	}
}

func TestAnnouncementUpdateUnknownID(t *testing.T) {
	store := &fakeAnnouncements{}
	h := NewAnnouncementHandler(store, time.Second, zap.NewNop())
	id := primitive.NewObjectID().Hex()

	w := httptest.NewRecorder()
	h.Update(w, announcementRequest(http.MethodPut, "/api/announcements/"+id,
		`{"title":"t","content":"c"}`, primitive.NewObjectID(), map[string]string{"id": id}))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
