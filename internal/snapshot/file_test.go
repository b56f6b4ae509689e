package snapshot

import (
	"context"
	"errors"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, err := store.Get(ctx, KeyState); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot for missing key, got %v", err)
	}

	payload := []byte(`{"ducks":[]}`)
	if err := store.Put(ctx, KeyState, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, KeyState)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}

	// Overwrite replaces, not appends.
	if err := store.Put(ctx, KeyState, []byte("v2")); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err = store.Get(ctx, KeyState)
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Get after overwrite = %q, want v2", got)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Delete(ctx, KeyAuth); err != nil {
		t.Errorf("deleting a missing key should not error, got %v", err)
	}

	if err := store.Put(ctx, KeyAuth, []byte("true")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, KeyAuth); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, KeyAuth); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot after delete, got %v", err)
	}
}

func TestFileStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := store.Put(ctx, KeyState, []byte("state")); err != nil {
		t.Fatalf("Put state: %v", err)
	}
	if err := store.Put(ctx, KeyActiveTab, []byte("finance")); err != nil {
		t.Fatalf("Put tab: %v", err)
	}

	got, err := store.Get(ctx, KeyActiveTab)
	if err != nil || string(got) != "finance" {
		t.Errorf("Get tab = %q, %v", got, err)
	}
	got, err = store.Get(ctx, KeyState)
	if err != nil || string(got) != "state" {
		t.Errorf("Get state = %q, %v", got, err)
	}
}

func TestNewFileStoreRequiresDir(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("expected error for empty data directory")
	}
}
