package logging

import "testing"

func TestNewDefaultsToInfo(t *testing.T) {
	for _, level := range []string{"", "verbose", "INFO"} {
		if logger := New(level); logger == nil || logger.Logger == nil {
			t.Fatalf("New(%q) returned nil logger", level)
		}
	}
}

func TestNamedNilReceiver(t *testing.T) {
	var logger *Logger
	named := logger.Named("conversation")
	if named == nil || named.Logger == nil {
		t.Fatal("Named on nil receiver should fall back to default logger")
	}
}
