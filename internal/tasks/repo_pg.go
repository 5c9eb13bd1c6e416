package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	rec "automation-coach/internal/recommendations"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectTaskColumns = `
SELECT id, organization, department, name, email, job_description, repeat_cycle,
       automation_request, current_tools, estimated_hours, recommendation, clarification,
       task_category, automation_level, status, coach_comment_status, coaching_key,
       coaching_engine, created_at, updated_at
FROM tasks`

func (r *PGRepo) Create(ctx context.Context, t Task) error {
	const query = `
INSERT INTO tasks (
	id, organization, department, name, email, job_description, repeat_cycle,
	automation_request, current_tools, estimated_hours, recommendation, clarification,
	task_category, automation_level, status, coach_comment_status, coaching_key,
	coaching_engine, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	recommendation, err := marshalJSONB(t.Recommendation)
	if err != nil {
		return err
	}
	clarification, err := marshalJSONB(t.Clarification)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		t.ID,
		t.Organization,
		t.Department,
		t.Name,
		t.Email,
		t.JobDescription,
		t.RepeatCycle,
		t.AutomationRequest,
		nullString(t.CurrentTools),
		t.EstimatedHours,
		recommendation,
		clarification,
		nullString(string(t.Category)),
		nullString(string(t.AutomationLevel)),
		string(t.Status),
		string(t.CommentStatus),
		nullString(t.CoachingKey),
		nullString(t.CoachingEngine),
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, taskID string) (Task, error) {
	row := r.DB.QueryRowContext(ctx, selectTaskColumns+` WHERE id = $1`, taskID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	return t, err
}

func (r *PGRepo) ListByEmail(ctx context.Context, email string, limit, offset int) ([]Task, error) {
	return r.query(ctx, selectTaskColumns+`
WHERE email = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`, email, limitArg(limit), offset)
}

func (r *PGRepo) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]Task, error) {
	if status == "" {
		return r.query(ctx, selectTaskColumns+`
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	}
	return r.query(ctx, selectTaskColumns+`
WHERE status = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`, string(status), limitArg(limit), offset)
}

func (r *PGRepo) UpdateState(ctx context.Context, taskID string, from, to State) error {
	res, err := r.DB.ExecContext(ctx, `
UPDATE tasks
SET status = $1, coach_comment_status = $2, updated_at = $3
WHERE id = $4 AND status = $5 AND coach_comment_status = $6`,
		string(to.Status), string(to.CommentStatus), time.Now().UTC(),
		taskID, string(from.Status), string(from.CommentStatus),
	)
	if err != nil {
		return fmt.Errorf("update task state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists int
	err = r.DB.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE id = $1`, taskID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrConflict
}

func (r *PGRepo) SetCoaching(ctx context.Context, taskID, key, engine string) error {
	res, err := r.DB.ExecContext(ctx, `
UPDATE tasks
SET coaching_key = $1, coaching_engine = $2, updated_at = $3
WHERE id = $4`, key, engine, time.Now().UTC(), taskID)
	if err != nil {
		return fmt.Errorf("set task coaching: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var status, commentStatus string
	var currentTools, category, level, coachingKey, coachingEngine sql.NullString
	var recommendation, clarification []byte
	if err := row.Scan(
		&t.ID,
		&t.Organization,
		&t.Department,
		&t.Name,
		&t.Email,
		&t.JobDescription,
		&t.RepeatCycle,
		&t.AutomationRequest,
		&currentTools,
		&t.EstimatedHours,
		&recommendation,
		&clarification,
		&category,
		&level,
		&status,
		&commentStatus,
		&coachingKey,
		&coachingEngine,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return Task{}, err
	}
	t.CurrentTools = currentTools.String
	t.Category = rec.Category(category.String)
	t.AutomationLevel = rec.AutomationLevel(level.String)
	t.Status = Status(status)
	t.CommentStatus = CommentStatus(commentStatus)
	t.CoachingKey = coachingKey.String
	t.CoachingEngine = coachingEngine.String
	if len(recommendation) > 0 {
		var res rec.Result
		if err := json.Unmarshal(recommendation, &res); err != nil {
			return Task{}, fmt.Errorf("task %s recommendation: %w", t.ID, err)
		}
		t.Recommendation = &res
	}
	if len(clarification) > 0 {
		var c Clarification
		if err := json.Unmarshal(clarification, &c); err != nil {
			return Task{}, fmt.Errorf("task %s clarification: %w", t.ID, err)
		}
		t.Clarification = &c
	}
	return t, nil
}

// marshalJSONB stores nil pointers as SQL NULL.
func marshalJSONB[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// limitArg maps "no limit" to NULL, which Postgres treats as LIMIT ALL.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
