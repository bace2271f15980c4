package logger

import "testing"

func TestSanitizeKVsRedactsSensitiveKeys(t *testing.T) {
	got := sanitizeKVs([]interface{}{"username", "alice", "Password", "hunter2", "access_token", "abc", "dangling"})
	want := []interface{}{"username", "alice", "Password", "[REDACTED]", "access_token", "[REDACTED]", "dangling"}

	if len(got) != len(want) {
		t.Fatalf("unexpected length: got=%d want=%d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestNewTestModeIsSilent(t *testing.T) {
	l, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.With("service", "x").Info("hello", "k", "v")
}
