package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/attendance"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/auth"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/config"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/handlers"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/leave"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/mailer"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/metrics"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/middleware"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/store"
)

// SetupRouter wires stores, services and handlers onto the HTTP mux.
func SetupRouter(client *mongo.Client, cfg config.Config, authMgr *auth.Manager, ml *mailer.Mailer, log *zap.Logger) *mux.Router {
	users := store.NewUserStore(client, cfg.DatabaseName)
	records := store.NewAttendanceStore(client, cfg.DatabaseName)
	schedules := store.NewScheduleStore(client, cfg.DatabaseName)
	announcements := store.NewAnnouncementStore(client, cfg.DatabaseName)
	leaves := store.NewLeaveStore(client, cfg.DatabaseName)

	attendanceSvc := attendance.NewService(records)
	leaveSvc := leave.NewService(users, leaves, ml)

	userHandler := handlers.NewUserHandler(users, authMgr, cfg.Timeout, log)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceSvc, records, users, cfg.UploadDir, cfg.Timeout, log)
	scheduleHandler := handlers.NewScheduleHandler(schedules, cfg.Timeout, log)
	announcementHandler := handlers.NewAnnouncementHandler(announcements, cfg.Timeout, log)
	leaveHandler := handlers.NewLeaveHandler(leaveSvc, cfg.UploadDir, cfg.Timeout, log)

	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	anyone := middleware.RequireAuth(authMgr)
	faculty := middleware.RequireFaculty(authMgr)
	student := middleware.RequireStudent(authMgr)

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", userHandler.Register).Methods("POST")
	api.HandleFunc("/login", userHandler.Login).Methods("POST")
	api.HandleFunc("/forgot-password", userHandler.ForgotPassword).Methods("POST")

	api.Handle("/users", anyone(http.HandlerFunc(userHandler.GetStudents))).Methods("GET")
	api.Handle("/sections", anyone(http.HandlerFunc(userHandler.GetSections))).Methods("GET")

	api.Handle("/attendance", anyone(http.HandlerFunc(attendanceHandler.Get))).Methods("GET")
	api.Handle("/attendance", faculty(http.HandlerFunc(attendanceHandler.Submit))).Methods("POST")
	api.Handle("/attendance/upload", faculty(http.HandlerFunc(attendanceHandler.Upload))).Methods("POST")
	api.Handle("/attendance/export", faculty(http.HandlerFunc(attendanceHandler.Export))).Methods("GET")

	api.Handle("/schedule", anyone(http.HandlerFunc(scheduleHandler.Get))).Methods("GET")
	api.Handle("/schedule", faculty(http.HandlerFunc(scheduleHandler.Create))).Methods("POST")
	api.Handle("/schedule/{id}", faculty(http.HandlerFunc(scheduleHandler.Update))).Methods("PUT")
	api.Handle("/schedule/{id}", faculty(http.HandlerFunc(scheduleHandler.Delete))).Methods("DELETE")

	api.Handle("/announcements", anyone(http.HandlerFunc(announcementHandler.Get))).Methods("GET")
	api.Handle("/announcements", faculty(http.HandlerFunc(announcementHandler.Create))).Methods("POST")
	api.Handle("/announcements/{id}", faculty(http.HandlerFunc(announcementHandler.Update))).Methods("PUT")
	api.Handle("/announcements/{id}", faculty(http.HandlerFunc(announcementHandler.Delete))).Methods("DELETE")

	api.Handle("/leave-request", student(http.HandlerFunc(leaveHandler.Submit))).Methods("POST")
	api.Handle("/leave-request", anyone(http.HandlerFunc(leaveHandler.Get))).Methods("GET")
	api.Handle("/leave-request/{id}", faculty(http.HandlerFunc(leaveHandler.Decide))).Methods("PUT")

	return router
}
