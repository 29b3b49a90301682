package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"exercisetracker/internal/domain"
)

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	if err := db.CreateUser(ctx, domain.User{ID: "a", Username: "bob"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := db.CreateUser(ctx, domain.User{ID: "b", Username: "bob"}); err != nil {
		t.Fatalf("CreateUser duplicate username: %v", err)
	}
	if err := db.CreateUser(ctx, domain.User{ID: "a", Username: "alice"}); err == nil {
		t.Fatal("expected error for duplicate id")
	}

	u, err := db.GetUser(ctx, "b")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Username != "bob" {
		t.Errorf("expected bob, got %s", u.Username)
	}

	if _, err := db.GetUser(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	users, _ := db.ListUsers(ctx)
	if len(users) != 2 || users[0].ID != "a" || users[1].ID != "b" {
		t.Errorf("unexpected users: %v", users)
	}
}

func TestAddExercise(t *testing.T) {
	db := New()
	ctx := context.Background()

	ex := domain.Exercise{ID: "e1", UserID: "u1", Username: "bob", Description: "run", Duration: 30, Date: "Wed Jan 01 2020"}
	if err := db.AddExercise(ctx, ex); err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	got := db.Exercises()
	if len(got) != 1 || got[0] != ex {
		t.Fatalf("unexpected exercises: %v", got)
	}
}

func TestLogRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.GetLog(ctx, "u1", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first entry, got %v", err)
	}

	for i := 0; i < 3; i++ {
		entry := domain.LogEntry{Description: fmt.Sprintf("run %d", i), Duration: 10, Date: "Wed Jan 01 2020"}
		if err := db.AppendLogEntry(ctx, "u1", "bob", entry); err != nil {
			t.Fatalf("AppendLogEntry: %v", err)
		}
	}

	agg, err := db.GetLog(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if agg.ID != "u1" || agg.Username != "bob" {
		t.Errorf("unexpected aggregate header: %+v", agg)
	}
	if agg.Count != 3 || len(agg.Log) != 3 {
		t.Fatalf("expected count=3 len=3, got count=%d len=%d", agg.Count, len(agg.Log))
	}
	if agg.Log[0].Description != "run 0" || agg.Log[2].Description != "run 2" {
		t.Errorf("entries out of order: %v", agg.Log)
	}

	limited, _ := db.GetLog(ctx, "u1", 2)
	if limited.Count != 3 || len(limited.Log) != 2 {
		t.Errorf("expected count=3 len=2, got count=%d len=%d", limited.Count, len(limited.Log))
	}

	// Returned aggregates must not alias internal state.
	limited.Log[0].Description = "mutated"
	again, _ := db.GetLog(ctx, "u1", 0)
	if again.Log[0].Description != "run 0" {
		t.Error("GetLog leaked internal slice")
	}
}

func TestLogRepository_MergesByUsername(t *testing.T) {
	db := New()
	ctx := context.Background()

	_ = db.AppendLogEntry(ctx, "u1", "bob", domain.LogEntry{Description: "first"})
	_ = db.AppendLogEntry(ctx, "u2", "bob", domain.LogEntry{Description: "second"})

	agg, err := db.GetLog(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if agg.Count != 2 {
		t.Errorf("expected merged count 2, got %d", agg.Count)
	}
	if _, err := db.GetLog(ctx, "u2", 0); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected no aggregate under the second user id, got %v", err)
	}
}

func TestLogRepository_ConcurrentAppend(t *testing.T) {
	db := New()
	ctx := context.Background()
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry := domain.LogEntry{Description: fmt.Sprintf("ex %d", i), Duration: 1}
			if err := db.AppendLogEntry(ctx, "u1", "bob", entry); err != nil {
				t.Errorf("AppendLogEntry: %v", err)
			}
		}(i)
	}
	wg.Wait()

	agg, err := db.GetLog(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("GetLog: %v", err)
	}
	if agg.Count != n || len(agg.Log) != n {
		t.Fatalf("expected count=len=%d, got count=%d len=%d", n, agg.Count, len(agg.Log))
	}
}

func TestDeleteExercise(t *testing.T) {
	db := New()
	ctx := context.Background()

	for _, id := range []string{"e1", "e2", "e3"} {
		if err := db.AddExercise(ctx, domain.Exercise{ID: id, UserID: "u1"}); err != nil {
			t.Fatalf("AddExercise: %v", err)
		}
	}
	if err := db.DeleteExercise(ctx, "e2"); err != nil {
		t.Fatalf("DeleteExercise: %v", err)
	}
	if err := db.DeleteExercise(ctx, "missing"); err != nil {
		t.Fatalf("DeleteExercise(missing): %v", err)
	}

	got := db.Exercises()
	if len(got) != 2 || got[0].ID != "e1" || got[1].ID != "e3" {
		t.Fatalf("unexpected exercises %v", got)
	}
}
