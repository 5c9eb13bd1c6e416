package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	rec "automation-coach/internal/recommendations"
)

var taskColumns = []string{
	"id", "organization", "department", "name", "email", "job_description", "repeat_cycle",
	"automation_request", "current_tools", "estimated_hours", "recommendation", "clarification",
	"task_category", "automation_level", "status", "coach_comment_status", "coaching_key",
	"coaching_engine", "created_at", "updated_at",
}

func TestPGRepoCreateEncodesJSONB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	task := Task{
		ID:                "task-1",
		Organization:      "org",
		Department:        "dept",
		Name:              "name",
		Email:             "a@example.com",
		JobDescription:    "jd",
		RepeatCycle:       "매주",
		AutomationRequest: "req",
		EstimatedHours:    4,
		Recommendation:    &rec.Result{Category: rec.CategoryMeeting, Keywords: []string{"회의"}},
		Category:          rec.CategoryMeeting,
		AutomationLevel:   rec.AutomationSemi,
		Status:            StatusAnalyzed,
		CommentStatus:     CommentNone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(
			"task-1", "org", "dept", "name", "a@example.com", "jd", "매주", "req",
			sqlmock.AnyArg(), // current_tools
			4.0,
			sqlmock.AnyArg(), // recommendation
			nil,              // clarification
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			"analyzed", "none",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
			now, now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDDecodesRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("FROM tasks WHERE id = \\$1").
		WithArgs("task-1").
		WillReturnRows(sqlmock.NewRows(taskColumns).AddRow(
			"task-1", "org", "dept", "name", "a@example.com", "jd", "매주", "req",
			nil, 4.0,
			[]byte(`{"category":"회의","keywords":["회의"],"recommended_tools":[],"automation_level":"semi","time_saving":{"percentage":50,"saved_hours":2,"new_hours":2}}`),
			[]byte(`{"question_id":"data_type","option_id":"data_local","label":"엑셀","additional_keywords":["엑셀"]}`),
			"회의", "semi", "commented", "published", "coaching/task-1.json", "gemini", now, now,
		))
	mock.ExpectQuery("FROM tasks WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(taskColumns))

	repo := &PGRepo{DB: db}
	task, err := repo.GetByID(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if task.Recommendation == nil || task.Recommendation.TimeSaving.Percentage != 50 {
		t.Fatalf("recommendation not decoded: %+v", task.Recommendation)
	}
	if task.Clarification == nil || task.Clarification.OptionID != "data_local" {
		t.Fatalf("clarification not decoded: %+v", task.Clarification)
	}
	if task.State() != (State{StatusCommented, CommentPublished}) || task.CoachingKey != "coaching/task-1.json" {
		t.Fatalf("unexpected task %+v", task)
	}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStateDetectsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	from := State{StatusAnalyzed, CommentNone}
	to := State{StatusCommented, CommentPublished}

	mock.ExpectExec("UPDATE tasks").
		WithArgs("commented", "published", sqlmock.AnyArg(), "task-1", "analyzed", "none").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE tasks").
		WithArgs("commented", "published", sqlmock.AnyArg(), "task-2", "analyzed", "none").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM tasks").
		WithArgs("task-2").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectExec("UPDATE tasks").
		WithArgs("commented", "published", sqlmock.AnyArg(), "task-3", "analyzed", "none").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM tasks").
		WithArgs("task-3").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	repo := &PGRepo{DB: db}
	if err := repo.UpdateState(context.Background(), "task-1", from, to); err != nil {
		t.Fatalf("UpdateState: %v", err)
	}
	if err := repo.UpdateState(context.Background(), "task-2", from, to); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := repo.UpdateState(context.Background(), "task-3", from, to); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByStatusWithoutFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM tasks\\s+ORDER BY created_at DESC").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(taskColumns))
	mock.ExpectQuery("WHERE status = \\$1").
		WithArgs("analyzed", 5, 10).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	repo := &PGRepo{DB: db}
	if list, err := repo.ListByStatus(context.Background(), "", 20, 0); err != nil || len(list) != 0 {
		t.Fatalf("ListByStatus all = %v, %v", list, err)
	}
	if _, err := repo.ListByStatus(context.Background(), StatusAnalyzed, 5, 10); err != nil {
		t.Fatalf("ListByStatus analyzed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
