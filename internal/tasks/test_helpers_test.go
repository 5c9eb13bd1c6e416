package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"automation-coach/internal/catalog"
	"automation-coach/internal/comments"
	"automation-coach/internal/queue"
	localstore "automation-coach/internal/shared/storage/object/local"
)

type fakeQueue struct {
	mu   sync.Mutex
	msgs []queue.Message
	err  error
}

func (f *fakeQueue) Send(ctx context.Context, msg queue.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return f.err
}

type fakeCoaching struct {
	done chan string
}

func (f *fakeCoaching) ProcessTask(ctx context.Context, taskID string) error {
	f.done <- taskID
	return nil
}

type fixture struct {
	svc      *Service
	repo     *MemoryRepo
	comments *comments.MemoryRepo
	store    *localstore.Store
	queue    *fakeQueue
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	tools, err := catalog.SeedTools()
	if err != nil {
		t.Fatalf("SeedTools: %v", err)
	}
	f := fixture{
		repo:     NewMemoryRepo(),
		comments: comments.NewMemoryRepo(),
		store:    localstore.New(t.TempDir()),
		queue:    &fakeQueue{},
	}
	f.svc = &Service{
		Repo:     f.repo,
		Catalog:  catalog.NewMemoryRepo(tools...),
		Comments: f.comments,
		Store:    f.store,
		Queue:    f.queue,
		Now:      func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) },
	}
	return f
}

func validInput() CreateInput {
	return CreateInput{
		Organization:      "디마불사",
		Department:        "경영지원팀",
		Name:              "김민지",
		Email:             " MinJi@Example.com ",
		JobDescription:    "매주 엑셀 파일로 매출 데이터를 정리하고 분석해서 보고서를 만듭니다",
		RepeatCycle:       "매주",
		AutomationRequest: "엑셀 데이터 분석과 시각화를 자동으로 하고 싶어요",
		EstimatedHours:    5,
	}
}
