package comments

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var commentColumns = []string{
	"id", "task_id", "additional_tools", "tool_explanation", "tips", "learning_priority",
	"general_comment", "status", "coach_name", "coach_email", "created_at", "updated_at",
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c := Comment{
		ID:             "c-1",
		TaskID:         "t-1",
		GeneralComment: "좋아요",
		Status:         StatusPublished,
		CoachName:      DefaultCoachName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	mock.ExpectExec("INSERT INTO comments").
		WithArgs(
			"c-1", "t-1",
			sql.NullString{}, sql.NullString{}, sql.NullString{}, sql.NullString{},
			sql.NullString{String: "좋아요", Valid: true},
			"published", DefaultCoachName, sql.NullString{},
			now, now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLatestPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectQuery("FROM comments\\s+WHERE task_id = \\$1 AND status = 'published'").
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow("c-1", "t-1", nil, "설명", nil, nil, "총평", "published", DefaultCoachName, "coach@example.com", now, now))
	mock.ExpectQuery("FROM comments\\s+WHERE task_id = \\$1 AND status = 'published'").
		WithArgs("t-2").
		WillReturnRows(sqlmock.NewRows(commentColumns))

	repo := &PGRepo{DB: db}
	c, err := repo.LatestPublished(context.Background(), "t-1")
	if err != nil {
		t.Fatalf("LatestPublished: %v", err)
	}
	if c.ToolExplanation != "설명" || c.GeneralComment != "총평" || c.AdditionalTools != "" || c.CoachEmail != "coach@example.com" {
		t.Fatalf("unexpected comment %+v", c)
	}
	if _, err := repo.LatestPublished(context.Background(), "t-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
