package leave

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

func submitOnce(t *testing.T, env *testEnv) []models.LeaveRequest {
	t.Helper()
	created, err := env.svc.Submit(context.Background(), env.input())
	if err != nil {
		t.Fatal(err)
	}
	return created
}

func decideAs(t *testing.T, env *testEnv, req models.LeaveRequest, status models.LeaveStatus) {
	t.Helper()
	if _, err := env.svc.Decide(context.Background(), req.ID, req.FacultyID, status); err != nil {
		t.Fatal(err)
	}
}

func studentStatus(t *testing.T, env *testEnv) models.LeaveStatus {
	t.Helper()
	view, err := env.svc.StudentView(context.Background(), env.studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view) != 1 {
		t.Fatalf("student view has %d requests, want 1", len(view))
	}
	return view[0].Status
}

func TestAggregateStatusPrecedence(t *testing.T) {
	t.Run("all pending", func(t *testing.T) {
		env := newTestEnv()
		submitOnce(t, env)
		if got := studentStatus(t, env); got != models.LeavePending {
			t.Fatalf("aggregate = %s, want pending", got)
		}
	})

	t.Run("approved beats pending", func(t *testing.T) {
		env := newTestEnv()
		created := submitOnce(t, env)
		decideAs(t, env, created[0], models.LeaveApproved)
		if got := studentStatus(t, env); got != models.LeaveApproved {
			t.Fatalf("aggregate = %s, want approved", got)
		}
	})

	t.Run("approved beats rejected", func(t *testing.T) {
		env := newTestEnv()
		created := submitOnce(t, env)
		decideAs(t, env, created[0], models.LeaveRejected)
		decideAs(t, env, created[1], models.LeaveApproved)
		if got := studentStatus(t, env); got != models.LeaveApproved {
			t.Fatalf("aggregate = %s, want approved", got)
		}
	})

	t.Run("rejected beats pending", func(t *testing.T) {
		env := newTestEnv()
		created := submitOnce(t, env)
		decideAs(t, env, created[1], models.LeaveRejected)
		if got := studentStatus(t, env); got != models.LeaveRejected {
			t.Fatalf("aggregate = %s, want rejected", got)
		}
	})
}

func TestStudentViewCarriesFacultyResponses(t *testing.T) {
	env := newTestEnv()
	created := submitOnce(t, env)
	decideAs(t, env, created[0], models.LeaveApproved)

	view, err := env.svc.StudentView(context.Background(), env.studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view) != 1 {
		t.Fatalf("student view has %d requests, want 1", len(view))
	}
	responses := view[0].FacultyResponses
	if len(responses) != 2 {
		t.Fatalf("got %d faculty responses, want 2", len(responses))
	}
	byName := map[string]models.LeaveStatus{}
	for _, r := range responses {
		if r.FacultyName == "" || r.FacultyName == "Unknown" {
			t.Fatalf("missing faculty name in response %+v", r)
		}
		byName[r.FacultyName] = r.Status
	}
	if byName["Dr. Rao"] != models.LeaveApproved || byName["Dr. Mehta"] != models.LeavePending {
		t.Fatalf("responses = %v", byName)
	}
}

func TestIdenticalRequestsStaySeparate(t *testing.T) {
	// two logical requests with identical reason/dates/proof must not merge:
	// grouping is by request id, not field equality
	env := newTestEnv()
	submitOnce(t, env)
	submitOnce(t, env)

	view, err := env.svc.StudentView(context.Background(), env.studentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(view) != 2 {
		t.Fatalf("student view has %d requests, want 2", len(view))
	}
	if view[0].RequestID == view[1].RequestID {
		t.Fatal("distinct submissions share a request id")
	}
}

func TestFacultyViewIsUnaggregated(t *testing.T) {
	env := newTestEnv()
	created := submitOnce(t, env)

	own, err := env.svc.FacultyView(context.Background(), env.faculty1)
	if err != nil {
		t.Fatal(err)
	}
	if len(own) != 1 {
		t.Fatalf("faculty view has %d records, want 1", len(own))
	}
	if own[0].ID != created[0].ID && own[0].ID != created[1].ID {
		t.Fatal("faculty view returned a foreign record")
	}
	if own[0].FacultyID != env.faculty1 {
		t.Fatal("faculty view returned another faculty's copy")
	}
}

func TestDecideIsIndependentPerCopy(t *testing.T) {
	env := newTestEnv()
	created := submitOnce(t, env)
	decideAs(t, env, created[0], models.LeaveApproved)

	for _, rec := range env.store.records {
		if rec.ID == created[0].ID {
			if rec.Status != models.LeaveApproved {
				t.Fatal("decided copy not updated")
			}
			continue
		}
		if rec.Status != models.LeavePending {
			t.Fatal("deciding one copy changed another faculty's copy")
		}
	}
}

func TestDecideTransitionsAreTerminal(t *testing.T) {
	env := newTestEnv()
	created := submitOnce(t, env)
	decideAs(t, env, created[0], models.LeaveRejected)

	_, err := env.svc.Decide(context.Background(), created[0].ID, created[0].FacultyID, models.LeaveApproved)
	if !isValidation(err) {
		t.Fatalf("re-deciding = %v, want ValidationError", err)
	}
}

func TestDecideGuards(t *testing.T) {
	env := newTestEnv()
	created := submitOnce(t, env)

	if _, err := env.svc.Decide(context.Background(), created[0].ID, env.faculty2, models.LeaveApproved); !isAuthorization(err) {
		t.Fatalf("foreign faculty decision = %v, want AuthorizationError", err)
	}
	if _, err := env.svc.Decide(context.Background(), created[0].ID, created[0].FacultyID, "maybe"); !isValidation(err) {
		t.Fatalf("bad status = %v, want ValidationError", err)
	}
	if _, err := env.svc.Decide(context.Background(), primitive.NewObjectID(), env.faculty1, models.LeaveApproved); !isNotFound(err) {
		t.Fatalf("unknown id = %v, want NotFoundError", err)
	}
}
