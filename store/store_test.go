package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get(KeyAuthToken); ok {
		t.Fatal("expected miss on empty store")
	}

	if err := s.Set(KeyAuthToken, "tok-1"); err != nil {
		t.Fatal(err)
	}
	if v, ok := s.Get(KeyAuthToken); !ok || v != "tok-1" {
		t.Fatalf("Get = %q, %v", v, ok)
	}

	if err := s.Delete(KeyAuthToken); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(KeyAuthToken); ok {
		t.Fatal("expected delete to remove the key")
	}

	s.Set(KeyToken, "a")
	s.Set(KeyUserData, "b")
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get(KeyToken); ok {
		t.Fatal("expected clear to drop all keys")
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyAuthToken, "tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeyRefreshToken, "refresh-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(KeyRefreshToken); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := reopened.Get(KeyAuthToken); !ok || v != "tok-1" {
		t.Fatalf("expected token to survive reopen, got %q, %v", v, ok)
	}
	if _, ok := reopened.Get(KeyRefreshToken); ok {
		t.Fatal("deleted key should not survive reopen")
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("a missing state file should not be an error: %v", err)
	}
	if _, ok := s.Get(KeyAuthToken); ok {
		t.Fatal("expected empty store")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("not-json{"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Fatal("expected a corrupt state file to surface an error")
	}
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Set(KeyAuthToken, "tok-1")
	s.Set(KeyUserData, `{"id":"user-1"}`)
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reopened.Get(KeyAuthToken); ok {
		t.Fatal("expected clear to persist")
	}
}
