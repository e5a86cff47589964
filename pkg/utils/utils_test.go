package utils

import "testing"

func TestIsValidKey(t *testing.T) {
	valid := []string{"notes", "reminders", "trash", "a", "user_1-notes"}
	invalid := []string{"", "Notes", "1notes", "../x", "a/b", "a.b", "has space"}
	for _, k := range valid {
		if !IsValidKey(k) {
			t.Errorf("IsValidKey(%q) = false", k)
		}
	}
	for _, k := range invalid {
		if IsValidKey(k) {
			t.Errorf("IsValidKey(%q) = true", k)
		}
	}
}

func TestKeyFromFilename(t *testing.T) {
	if key, ok := KeyFromFilename("notes.json"); !ok || key != "notes" {
		t.Fatalf("KeyFromFilename = %q, %v", key, ok)
	}
	for _, name := range []string{"write-123.tmp", "notes.txt", "Bad.json", ".json"} {
		if _, ok := KeyFromFilename(name); ok {
			t.Errorf("KeyFromFilename(%q) accepted", name)
		}
	}
}

func TestIDs(t *testing.T) {
	if GenerateSessionID() == GenerateSessionID() {
		t.Fatal("session ids repeat")
	}
	if len(ShortID()) != 8 {
		t.Fatalf("ShortID = %q", ShortID())
	}
}
