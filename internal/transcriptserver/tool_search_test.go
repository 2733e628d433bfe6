package transcriptserver

import (
	"testing"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

func TestResolveContextWords(t *testing.T) {
	engine.Init(engine.Config{ContextWords: 5})

	if got := resolveContextWords(nil); got != 5 {
		t.Errorf("absent parameter: got %d, want configured default 5", got)
	}
	zero := 0
	if got := resolveContextWords(&zero); got != 0 {
		t.Errorf("explicit 0: got %d, want 0", got)
	}
	three := 3
	if got := resolveContextWords(&three); got != 3 {
		t.Errorf("explicit 3: got %d, want 3", got)
	}
}
