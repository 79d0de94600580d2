package session

import "testing"

func TestMarker(t *testing.T) {
	dir := t.TempDir()

	got, err := ReadMarker(dir)
	if err != nil || got != "" {
		t.Fatalf("ReadMarker() on empty dir = %q, %v", got, err)
	}
	if err := SaveMarker(dir, "ada@example.com"); err != nil {
		t.Fatal(err)
	}
	if got, _ := ReadMarker(dir); got != "ada@example.com" {
		t.Errorf("ReadMarker() = %q", got)
	}
	if err := ClearMarker(dir); err != nil {
		t.Fatal(err)
	}
	if err := ClearMarker(dir); err != nil {
		t.Errorf("second ClearMarker() = %v", err)
	}
	if got, _ := ReadMarker(dir); got != "" {
		t.Errorf("ReadMarker() after clear = %q", got)
	}
}
