package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"quiz-studio/internal/app"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	store.Put("s1", app.NewQuizSession("s1", sampleQuiz()))
	if !mr.Exists("quiz:session:s1") {
		t.Fatalf("expected redis key to be set")
	}
	if v, _ := mr.Get("quiz:session:s1"); v != "quiz-1" {
		t.Fatalf("expected liveness key to carry quiz id, got %q", v)
	}
	if _, ok := store.Get("s1"); !ok {
		t.Fatalf("expected session present")
	}

	store.Delete("s1")
	if mr.Exists("quiz:session:s1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}

func TestSessionStoreDropsAbandonedSessions(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	store.Put("idle", app.NewQuizSession("idle", sampleQuiz()))
	store.Put("asked", app.NewQuizSession("asked", sampleQuiz()))
	mr.FastForward(time.Hour)

	if mr.Exists("quiz:session:idle") {
		t.Fatalf("expected liveness key to expire")
	}
	if _, ok := store.Get("asked"); ok {
		t.Fatalf("expected expired session to be gone")
	}
	if store.Len() != 1 {
		t.Fatalf("expected Get to drop the expired session, got %d left", store.Len())
	}
	if removed := store.Sweep(context.Background()); removed != 1 {
		t.Fatalf("expected sweep to remove 1 session, got %d", removed)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no sessions left, got %d", store.Len())
	}
}

func TestSessionStoreKeepsActiveSessionsOnSweep(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	store.Put("s1", app.NewQuizSession("s1", sampleQuiz()))
	mr.FastForward(40 * time.Second)
	if _, ok := store.Get("s1"); !ok {
		t.Fatalf("expected session present")
	}
	mr.FastForward(40 * time.Second)

	if removed := store.Sweep(context.Background()); removed != 0 {
		t.Fatalf("Get refreshes the ttl, expected nothing swept, got %d", removed)
	}
	if _, ok := store.Get("s1"); !ok {
		t.Fatalf("expected session still present")
	}
}
