package store

import (
	"context"
	"testing"
)

func TestKV_PutGet(t *testing.T) {
	repo := openFileStore(t).KVRepo()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = %v, %v; want false, nil", ok, err)
	}

	if err := repo.Put(ctx, "quiz.state.v1", `{"a":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := repo.Get(ctx, "quiz.state.v1")
	if err != nil || !ok {
		t.Fatalf("get: %v, %v", ok, err)
	}
	if got != `{"a":1}` {
		t.Errorf("value = %q", got)
	}
}

func TestKV_PutOverwrites(t *testing.T) {
	repo := openFileStore(t).KVRepo()
	ctx := context.Background()

	for _, v := range []string{"one", "two", "three"} {
		if err := repo.Put(ctx, "k", v); err != nil {
			t.Fatalf("put %s: %v", v, err)
		}
	}
	got, _, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "three" {
		t.Errorf("value = %q, want three", got)
	}

	keys, err := repo.Keys(ctx, "")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("keys = %v, want a single key", keys)
	}
}

func TestKV_Delete(t *testing.T) {
	repo := openFileStore(t).KVRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "k"); ok {
		t.Error("expected key to be gone")
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Errorf("delete absent key: %v", err)
	}
}

func TestKV_KeysByPrefix(t *testing.T) {
	repo := openFileStore(t).KVRepo()
	ctx := context.Background()

	for _, k := range []string{"quiz.state.v1", "other", "quiz.state.v0", "quiz.stats"} {
		if err := repo.Put(ctx, k, "x"); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}

	keys, err := repo.Keys(ctx, "quiz.state.")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"quiz.state.v0", "quiz.state.v1"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
