package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectCommentColumns = `
SELECT id, task_id, additional_tools, tool_explanation, tips, learning_priority,
       general_comment, status, coach_name, coach_email, created_at, updated_at
FROM comments`

func (r *PGRepo) Create(ctx context.Context, c Comment) error {
	const query = `
INSERT INTO comments (
	id, task_id, additional_tools, tool_explanation, tips, learning_priority,
	general_comment, status, coach_name, coach_email, created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.TaskID,
		nullString(c.AdditionalTools),
		nullString(c.ToolExplanation),
		nullString(c.Tips),
		nullString(c.LearningPriority),
		nullString(c.GeneralComment),
		string(c.Status),
		c.CoachName,
		nullString(c.CoachEmail),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *PGRepo) LatestPublished(ctx context.Context, taskID string) (Comment, error) {
	row := r.DB.QueryRowContext(ctx, selectCommentColumns+`
WHERE task_id = $1 AND status = 'published'
ORDER BY created_at DESC
LIMIT 1`, taskID)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return c, err
}

func (r *PGRepo) ListByTask(ctx context.Context, taskID string) ([]Comment, error) {
	rows, err := r.DB.QueryContext(ctx, selectCommentColumns+`
WHERE task_id = $1
ORDER BY created_at DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (Comment, error) {
	var c Comment
	var status string
	var additional, explanation, tips, priority, general, email sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.TaskID,
		&additional,
		&explanation,
		&tips,
		&priority,
		&general,
		&status,
		&c.CoachName,
		&email,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return Comment{}, err
	}
	c.Status = Status(status)
	c.AdditionalTools = additional.String
	c.ToolExplanation = explanation.String
	c.Tips = tips.String
	c.LearningPriority = priority.String
	c.GeneralComment = general.String
	c.CoachEmail = email.String
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
