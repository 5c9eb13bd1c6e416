package catalog

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	rec "automation-coach/internal/recommendations"
)

var toolColumns = []string{
	"id", "name", "category", "subcategory", "description", "website_url", "use_cases", "keywords",
	"automation_level", "difficulty", "pricing_type", "pricing_detail", "rating", "popularity", "is_active",
}

func TestPGRepoListActiveScansJSONB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows(toolColumns).
		AddRow("tool-004", "Julius AI", "데이터분석", "데이터 시각화", "desc", "https://julius.ai",
			[]byte(`["데이터 시각화"]`), []byte(`["데이터","엑셀"]`), "semi", "beginner", "freemium", nil, 4.4, 70, true).
		AddRow("tool-001", "ChatGPT", "문서작성", nil, "desc", nil,
			[]byte(`[]`), nil, "semi", "beginner", "freemium", "월 $20", 4.8, 100, true)
	mock.ExpectQuery("SELECT id, name, category").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	tools, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	julius := tools[0]
	if julius.Category != rec.CategoryDataAnalysis || len(julius.Keywords) != 2 || julius.Keywords[1] != "엑셀" {
		t.Fatalf("unexpected tool %+v", julius)
	}
	chat := tools[1]
	if chat.Subcategory != "" || chat.URL != "" || chat.PricingDetail != "월 $20" || len(chat.Keywords) != 0 {
		t.Fatalf("unexpected nullable handling %+v", chat)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertRunsInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tl := tool("tool-1", "ChatGPT", rec.CategoryDocument, 100, true)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ai_tools").
		WithArgs(
			tl.ID, tl.Name, string(tl.Category), sqlmock.AnyArg(), tl.Description, sqlmock.AnyArg(),
			[]byte(`["용도"]`), []byte(`["키워드"]`),
			"semi", "beginner", "freemium", sqlmock.AnyArg(), tl.Rating, tl.Popularity, true,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.Upsert(context.Background(), []rec.Tool{tl}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertRollsBackInvalidTool(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	if err := repo.Upsert(context.Background(), []rec.Tool{{ID: "x"}}); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCategoryCountsAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT category, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).AddRow("리서치", 3).AddRow("회의", 1))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM ai_tools").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(30))

	repo := &PGRepo{DB: db}
	counts, err := repo.CategoryCounts(context.Background())
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	if len(counts) != 2 || counts[0].Category != rec.CategoryResearch || counts[0].Count != 3 {
		t.Fatalf("unexpected counts %+v", counts)
	}
	n, err := repo.Count(context.Background())
	if err != nil || n != 30 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
