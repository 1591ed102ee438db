package persist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ssegura/abasto/internal/models"
)

func TestSessionRoundTrip(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}

	expires := time.Now().Add(2 * time.Hour).Round(time.Second)
	in := SessionState{
		Token:     "tok-abc",
		ExpiresAt: expires,
		User:      models.User{ID: 7, Name: "Ana Suárez", Email: "ana@abasto.test"},
	}
	if err := m.SaveSession(in); err != nil {
		t.Fatalf("SaveSession returned error: %v", err)
	}

	out, ok := m.LoadSession()
	if !ok {
		t.Fatal("LoadSession reported no session after save")
	}
	if out.Token != in.Token || !out.ExpiresAt.Equal(expires) || out.User.Name != in.User.Name {
		t.Fatalf("LoadSession = %+v, want %+v", out, in)
	}
}

func TestLoadSession_MissingFile(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	if _, ok := m.LoadSession(); ok {
		t.Fatal("LoadSession reported a session in an empty state dir")
	}
}

func TestPurgeAuth_KeepsEntityCache(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	if err := m.SaveSession(SessionState{Token: "tok"}); err != nil {
		t.Fatalf("SaveSession returned error: %v", err)
	}
	if err := m.SaveCache(CacheState{Products: []models.Product{{ID: 1, Name: "Harina"}}}); err != nil {
		t.Fatalf("SaveCache returned error: %v", err)
	}

	if err := m.PurgeAuth(); err != nil {
		t.Fatalf("PurgeAuth returned error: %v", err)
	}
	if _, ok := m.LoadSession(); ok {
		t.Fatal("session survived PurgeAuth")
	}
	cache, ok := m.LoadCache()
	if !ok || len(cache.Products) != 1 || cache.Products[0].Name != "Harina" {
		t.Fatalf("cache = %+v %v, want it untouched by PurgeAuth", cache, ok)
	}

	// Purging twice is a no-op, not an error.
	if err := m.PurgeAuth(); err != nil {
		t.Fatalf("second PurgeAuth returned error: %v", err)
	}
}

func TestLoadCache_CorruptFileDegrades(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cache.toml"), []byte("{{{not toml"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, ok := m.LoadCache(); ok {
		t.Fatal("corrupt cache file must degrade to an empty cache, not load")
	}
}

func TestCacheRoundTrip_StampsSavedAt(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	in := CacheState{
		Sales: []models.Sale{{ID: 3, Status: models.SaleCompleted}},
	}
	before := time.Now().Add(-time.Second)
	if err := m.SaveCache(in); err != nil {
		t.Fatalf("SaveCache returned error: %v", err)
	}

	out, ok := m.LoadCache()
	if !ok {
		t.Fatal("LoadCache reported no cache after save")
	}
	if len(out.Sales) != 1 || out.Sales[0].ID != 3 {
		t.Fatalf("cache sales = %+v, want the saved sale", out.Sales)
	}
	if out.SavedAt.Before(before) {
		t.Fatalf("SavedAt = %v, want stamped at save time", out.SavedAt)
	}
}

func TestNewManager_ExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m, err := NewManager("~/estado/abasto")
	if err != nil {
		t.Fatalf("NewManager returned error: %v", err)
	}
	want := filepath.Join(home, "estado", "abasto")
	if m.Dir() != want {
		t.Fatalf("Dir = %q, want %q", m.Dir(), want)
	}
	if info, err := os.Stat(want); err != nil || !info.IsDir() {
		t.Fatalf("state dir not created: %v", err)
	}
}
