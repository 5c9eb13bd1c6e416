package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	rec "automation-coach/internal/recommendations"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectToolColumns = `
SELECT id, name, category, subcategory, description, website_url, use_cases, keywords,
       automation_level, difficulty, pricing_type, pricing_detail, rating, popularity, is_active
FROM ai_tools`

func (r *PGRepo) ListActive(ctx context.Context) ([]rec.Tool, error) {
	rows, err := r.DB.QueryContext(ctx, selectToolColumns+`
WHERE is_active
ORDER BY category, popularity DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()

	tools := []rec.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (r *PGRepo) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT category, COUNT(*) AS count
FROM ai_tools
WHERE is_active
GROUP BY category
ORDER BY count DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()

	out := []CategoryCount{}
	for rows.Next() {
		var cc CategoryCount
		var category string
		if err := rows.Scan(&category, &cc.Count); err != nil {
			return nil, err
		}
		cc.Category = rec.Category(category)
		out = append(out, cc)
	}
	return out, rows.Err()
}

// Upsert inserts or replaces tools in one transaction.
func (r *PGRepo) Upsert(ctx context.Context, tools []rec.Tool) error {
	const query = `
INSERT INTO ai_tools (
	id, name, category, subcategory, description, website_url, use_cases, keywords,
	automation_level, difficulty, pricing_type, pricing_detail, rating, popularity, is_active
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	category = EXCLUDED.category,
	subcategory = EXCLUDED.subcategory,
	description = EXCLUDED.description,
	website_url = EXCLUDED.website_url,
	use_cases = EXCLUDED.use_cases,
	keywords = EXCLUDED.keywords,
	automation_level = EXCLUDED.automation_level,
	difficulty = EXCLUDED.difficulty,
	pricing_type = EXCLUDED.pricing_type,
	pricing_detail = EXCLUDED.pricing_detail,
	rating = EXCLUDED.rating,
	popularity = EXCLUDED.popularity,
	is_active = EXCLUDED.is_active,
	updated_at = now()`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range tools {
		if err := Validate(t); err != nil {
			return err
		}
		useCases, err := marshalJSONB(t.UseCases)
		if err != nil {
			return err
		}
		keywords, err := marshalJSONB(t.Keywords)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query,
			t.ID,
			t.Name,
			string(t.Category),
			nullString(t.Subcategory),
			t.Description,
			nullString(t.URL),
			useCases,
			keywords,
			string(t.AutomationLevel),
			string(t.Difficulty),
			string(t.PricingType),
			nullString(t.PricingDetail),
			t.Rating,
			t.Popularity,
			t.Active,
		); err != nil {
			return fmt.Errorf("upsert tool %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM ai_tools`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tools: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTool(row rowScanner) (rec.Tool, error) {
	var t rec.Tool
	var category, level, difficulty, pricing string
	var subcategory, url, pricingDetail sql.NullString
	var useCases, keywords []byte
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&category,
		&subcategory,
		&t.Description,
		&url,
		&useCases,
		&keywords,
		&level,
		&difficulty,
		&pricing,
		&pricingDetail,
		&t.Rating,
		&t.Popularity,
		&t.Active,
	); err != nil {
		return rec.Tool{}, err
	}
	t.Category = rec.Category(category)
	t.AutomationLevel = rec.AutomationLevel(level)
	t.Difficulty = rec.Difficulty(difficulty)
	t.PricingType = rec.PricingType(pricing)
	t.Subcategory = subcategory.String
	t.URL = url.String
	t.PricingDetail = pricingDetail.String
	if err := unmarshalList(useCases, &t.UseCases); err != nil {
		return rec.Tool{}, fmt.Errorf("tool %s use_cases: %w", t.ID, err)
	}
	if err := unmarshalList(keywords, &t.Keywords); err != nil {
		return rec.Tool{}, fmt.Errorf("tool %s keywords: %w", t.ID, err)
	}
	return t, nil
}

func marshalJSONB(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}

func unmarshalList(data []byte, dst *[]string) error {
	if len(data) == 0 {
		*dst = []string{}
		return nil
	}
	return json.Unmarshal(data, dst)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
