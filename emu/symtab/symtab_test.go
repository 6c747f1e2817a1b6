package symtab

import "testing"

func TestDefineAndLookup(t *testing.T) {
	tab := New()
	if err := tab.Define("main", 0x00040000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	addr, err := tab.Lookup("main")
	if err != nil || addr != 0x00040000 {
		t.Errorf("got %d,%v want 0x40000,nil", addr, err)
	}
}

func TestDuplicateLabel(t *testing.T) {
	tab := New()
	_ = tab.Define("loop", 4)
	if err := tab.Define("loop", 8); err == nil {
		t.Error("expected duplicate label error")
	}
}

func TestUndefinedLabel(t *testing.T) {
	tab := New()
	if _, err := tab.Lookup("nowhere"); err == nil {
		t.Error("expected undefined label error")
	}
}

func TestEntrypoint(t *testing.T) {
	tab := New()
	_ = tab.Define("main", 0x00040000)
	if err := tab.SetEntry("main"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tab.SetEntry("main"); err == nil {
		t.Error("expected entrypoint-set-twice error")
	}
	addr, err := tab.EntryAddr()
	if err != nil || addr != 0x00040000 {
		t.Errorf("got %d,%v want 0x40000,nil", addr, err)
	}
}

func TestEntryMissing(t *testing.T) {
	tab := New()
	if _, err := tab.EntryAddr(); err == nil {
		t.Error("expected entrypoint-missing error")
	}
}
