package testsupport

import (
	"testing"

	"caveplan/internal/catalog"
	"caveplan/internal/config"
)

// MustOpenStore opens a catalog store for the config and closes it when the
// test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close catalog store: %v", err)
		}
	})
	return store
}
