package prefs

import (
	"testing"

	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := t.TempDir() + "/sub/katsayi.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.SetSetting(KeyExportDir, "/tmp/out")
	s.Close()

	// Reopen: settings survive and migration does not reseed.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if v, _ := s2.GetSetting(KeyExportDir); v != "/tmp/out" {
		t.Fatalf("export_dir = %q after reopen", v)
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		KeyExportDir:          "",
		KeyMinDate:            "01.01.2000",
		KeyDefaultCoefficient: "0.000",
	}

	for k, expected := range defaults {
		val, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("GetSetting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("GetSetting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting(KeyMinDate, "01.01.2010")
	s.SetSetting(KeyMinDate, "01.01.2020")
	val, _ := s.GetSetting(KeyMinDate)
	if val != "01.01.2020" {
		t.Fatalf("expected 01.01.2020, got %s", val)
	}
}

func TestSetSettingNewKey(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetSetting("custom_key", "custom_value"); err != nil {
		t.Fatal(err)
	}
	val, err := s.GetSetting("custom_key")
	if err != nil {
		t.Fatal(err)
	}
	if val != "custom_value" {
		t.Fatalf("expected custom_value, got %s", val)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestSettingOr(t *testing.T) {
	s := newTestStore(t)

	if got := s.SettingOr(KeyExportDir, "/home/me"); got != "/home/me" {
		t.Fatalf("empty setting should fall back, got %q", got)
	}
	if got := s.SettingOr("nonexistent", "x"); got != "x" {
		t.Fatalf("missing setting should fall back, got %q", got)
	}
	if got := s.SettingOr(KeyMinDate, "x"); got != "01.01.2000" {
		t.Fatalf("stored setting should win, got %q", got)
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 default settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key > all[i].Key {
			t.Fatalf("settings not sorted: %q before %q", all[i-1].Key, all[i].Key)
		}
	}
}

// ============================================================
// Export history
// ============================================================

func TestRecordExport(t *testing.T) {
	s := newTestStore(t)

	e, err := s.RecordExport(KindXLSX, "/tmp/katsayi_hesaplama.xlsx", 2, decimal.RequireFromString("19.5"))
	if err != nil {
		t.Fatal(err)
	}
	if e.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if e.Kind != KindXLSX || e.RecordCount != 2 {
		t.Fatalf("unexpected export: %+v", e)
	}
	if !e.Total.Equal(decimal.RequireFromString("19.5")) {
		t.Fatalf("total = %s, want 19.5", e.Total)
	}
	if e.CreatedAt.IsZero() {
		t.Fatal("created_at should be set")
	}
}

func TestGetExportNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetExport(999); err == nil {
		t.Fatal("expected error for missing export")
	}
}

func TestListExportsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.RecordExport(KindXLSX, "a.xlsx", 1, decimal.Zero)
	s.RecordExport(KindPDF, "b.pdf", 1, decimal.Zero)
	s.RecordExport(KindCSV, "c.csv", 1, decimal.Zero)

	all, err := s.ListExports(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 exports, got %d", len(all))
	}
	if all[0].Kind != KindCSV || all[2].Kind != KindXLSX {
		t.Fatalf("wrong order: %s ... %s", all[0].Kind, all[2].Kind)
	}

	limited, _ := s.ListExports(2)
	if len(limited) != 2 {
		t.Fatalf("limit 2 returned %d", len(limited))
	}
}

func TestListExportsEmpty(t *testing.T) {
	s := newTestStore(t)
	all, err := s.ListExports(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no exports, got %d", len(all))
	}
}
