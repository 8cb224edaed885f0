package input

import "testing"

func TestResolveActionMatchesRegisteredChord(t *testing.T) {
	if got := ResolveAction(DefaultKeyMap, "cmd+t"); got != ActionNewTab {
		t.Fatalf("expected cmd+t to resolve to ActionNewTab, got %v", got)
	}
	if got := ResolveAction(DefaultKeyMap, "ctrl+shift+t"); got != ActionNewTab {
		t.Fatalf("expected ctrl+shift+t to also resolve to ActionNewTab, got %v", got)
	}
}

func TestResolveActionNoneForUnboundKey(t *testing.T) {
	if got := ResolveAction(DefaultKeyMap, "x"); got != ActionNone {
		t.Fatalf("expected plain 'x' to resolve to ActionNone, got %v", got)
	}
}

func TestResolveActionDistinguishesCopyAndPaste(t *testing.T) {
	if got := ResolveAction(DefaultKeyMap, "cmd+c"); got != ActionCopy {
		t.Fatalf("expected cmd+c to resolve to ActionCopy, got %v", got)
	}
	if got := ResolveAction(DefaultKeyMap, "cmd+v"); got != ActionPaste {
		t.Fatalf("expected cmd+v to resolve to ActionPaste, got %v", got)
	}
}
