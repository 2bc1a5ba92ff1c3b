package memory

import (
	"context"
	"testing"
	"time"

	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	"github.com/google/uuid"
)

func TestSaveAndFind(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)
	ctx := context.Background()

	sess := &session.Session{Id: uuid.New(), Gewerke: []string{"elektro"}}
	if err := repo.Save(ctx, sess); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	found, err := repo.Find(ctx, sess.Id)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found == nil || found.Id != sess.Id {
		t.Errorf("Find() = %+v", found)
	}
}

func TestFindMissingReturnsNilNil(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)

	found, err := repo.Find(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found != nil {
		t.Errorf("Find() = %+v, want nil for unknown id", found)
	}
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)
	ctx := context.Background()

	sess := &session.Session{Id: uuid.New()}
	if err := repo.Save(ctx, sess); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, sess.Id); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	found, _ := repo.Find(ctx, sess.Id)
	if found != nil {
		t.Errorf("session survived delete: %+v", found)
	}
}

func TestExpiryEvictsIdleSessions(t *testing.T) {
	repo := NewSessionRepository(20*time.Millisecond, 10*time.Millisecond)
	ctx := context.Background()

	sess := &session.Session{Id: uuid.New()}
	if err := repo.Save(ctx, sess); err != nil {
		t.Fatal(err)
	}

	time.Sleep(50 * time.Millisecond)

	found, err := repo.Find(ctx, sess.Id)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found != nil {
		t.Errorf("idle session not evicted: %+v", found)
	}
}

func TestSaveRenewsExpiry(t *testing.T) {
	repo := NewSessionRepository(40*time.Millisecond, 10*time.Millisecond)
	ctx := context.Background()

	sess := &session.Session{Id: uuid.New()}
	if err := repo.Save(ctx, sess); err != nil {
		t.Fatal(err)
	}

	// Keep saving within the TTL; the session must outlive several TTLs of
	// wall time as long as activity continues.
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		if err := repo.Save(ctx, sess); err != nil {
			t.Fatal(err)
		}
	}

	found, _ := repo.Find(ctx, sess.Id)
	if found == nil {
		t.Error("active session evicted despite renewals")
	}
}
