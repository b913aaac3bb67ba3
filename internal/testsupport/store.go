package testsupport

import (
	"path/filepath"
	"testing"

	"shortreel/internal/queue"
)

// NewStore opens a run-history store backed by a per-test database.
func NewStore(t testing.TB) *queue.Store {
	t.Helper()

	store, err := queue.OpenPath(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close test store: %v", err)
		}
	})
	return store
}
