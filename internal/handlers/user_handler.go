package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/auth"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/store"
)

type UserHandler struct {
	users   *store.UserStore
	auth    *auth.Manager
	timeout time.Duration
	log     *zap.Logger
}

func NewUserHandler(users *store.UserStore, authMgr *auth.Manager, timeout time.Duration, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, auth: authMgr, timeout: timeout, log: log}
}

// Register handles user registration
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Role      string `json:"role"`
		Name      string `json:"name"`
		StudentID string `json:"studentId"`
		Branch    string `json:"branch"`
		Section   string `json:"section"`
		Subject   string `json:"subject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Section == "" {
		http.Error(w, "Email, password, name and section are required", http.StatusBadRequest)
		return
	}
	role := models.UserRole(req.Role)
	switch role {
	case models.RoleStudent:
		if req.StudentID == "" || req.Branch == "" {
			http.Error(w, "Student ID and branch are required for students", http.StatusBadRequest)
			return
		}
	case models.RoleFaculty:
		if req.Subject == "" {
			http.Error(w, "Subject is required for faculty", http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, "Role must be student or faculty", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	existing, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if existing != nil {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user, err := h.users.Insert(ctx, models.User{
		Email:     req.Email,
		Password:  string(hash),
		Role:      role,
		Name:      req.Name,
		Section:   req.Section,
		StudentID: req.StudentID,
		Branch:    req.Branch,
		Subject:   req.Subject,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login handles user login by email or student code.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		UserIDOrEmail string `json:"userIdOrEmail"`
		Password      string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.FindByLogin(ctx, credentials.UserIDOrEmail)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if user == nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusBadRequest)
		return
	}

	token, err := h.auth.GenerateJWT(user.ID.Hex(), string(user.Role))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Path:     "/api",
	})

	respondJSON(w, http.StatusOK, user)
}

// ForgotPassword resets a password by email or student code.
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserIDOrEmail string `json:"userIdOrEmail"`
		NewPassword   string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.NewPassword == "" {
		http.Error(w, "New password is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.users.FindByLogin(ctx, req.UserIDOrEmail)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	if err := h.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		writeError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"msg": "Password reset successfully"})
}

// GetStudents lists students, optionally for one section.
func (h *UserHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	students, err := h.users.ListStudents(ctx, r.URL.Query().Get("section"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, students)
}

// GetSections lists every section that has students.
func (h *UserHandler) GetSections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sections, err := h.users.DistinctSections(ctx)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, sections)
}
