package tabs

import "testing"

func TestNewHasOneTabActive(t *testing.T) {
	m := New()
	if len(m.Tabs) != 1 {
		t.Fatalf("expected 1 tab, got %d", len(m.Tabs))
	}
	if m.ActiveIndex != 0 {
		t.Fatalf("expected active index 0, got %d", m.ActiveIndex)
	}
}

func TestNewTabAppendsAndActivates(t *testing.T) {
	m := New()
	id := m.NewTab()
	if len(m.Tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(m.Tabs))
	}
	if m.Active().ID != id {
		t.Fatalf("expected new tab active, got active id %d want %d", m.Active().ID, id)
	}
}

func TestCloseTabReturnsPaneIdsAndRefusesLastTab(t *testing.T) {
	m := New()
	m.NewTab()

	ids, ok := m.CloseTab(0)
	if !ok || len(ids) != 1 {
		t.Fatalf("expected close to succeed with 1 pane id, got ok=%v ids=%v", ok, ids)
	}
	if len(m.Tabs) != 1 {
		t.Fatalf("expected 1 tab remaining, got %d", len(m.Tabs))
	}

	_, ok = m.CloseTab(0)
	if ok {
		t.Fatal("expected CloseTab on the last remaining tab to fail")
	}
}

func TestNextPrevTabWrap(t *testing.T) {
	m := New()
	m.NewTab()
	m.NewTab()
	m.SelectTab(0)

	m.PrevTab()
	if m.ActiveIndex != 2 {
		t.Fatalf("expected PrevTab from 0 to wrap to last index 2, got %d", m.ActiveIndex)
	}
	m.NextTab()
	if m.ActiveIndex != 0 {
		t.Fatalf("expected NextTab from last to wrap to 0, got %d", m.ActiveIndex)
	}
}

func TestSelectTabClearsNotification(t *testing.T) {
	m := New()
	m.NewTab()
	m.Tabs[1].HasNotification = true
	m.SelectTab(1)
	if m.Tabs[1].HasNotification {
		t.Fatal("expected selecting a tab to clear its notification flag")
	}
}

// Property 8 from spec.md §8: move_tab preserves the multiset of tab
// ids and keeps the originally active tab id active.
func TestMoveTabPreservesMultisetAndActiveID(t *testing.T) {
	m := New()
	m.NewTab()
	m.NewTab()
	m.SelectTab(2)
	activeID := m.Active().ID

	before := idSet(m)
	m.MoveTab(2, 0)
	after := idSet(m)

	if !sameSet(before, after) {
		t.Fatalf("expected same multiset of ids, before=%v after=%v", before, after)
	}
	if m.Active().ID != activeID {
		t.Fatalf("expected active id to remain %d, got %d", activeID, m.Active().ID)
	}
	if m.Tabs[0].ID != activeID {
		t.Fatalf("expected moved tab at index 0, got id %d", m.Tabs[0].ID)
	}
}

func TestSetTitleExplicitPriority(t *testing.T) {
	m := New()
	m.SetTitle(0, "from-osc", false)
	if m.Tabs[0].Title != "from-osc" {
		t.Fatalf("expected implicit title to be written when none set, got %q", m.Tabs[0].Title)
	}

	m.SetTitle(0, "user-set", true)
	if m.Tabs[0].Title != "user-set" || !m.Tabs[0].TitleIsExplicit {
		t.Fatalf("expected explicit title to win, got %q explicit=%v", m.Tabs[0].Title, m.Tabs[0].TitleIsExplicit)
	}

	m.SetTitle(0, "from-osc-again", false)
	if m.Tabs[0].Title != "user-set" {
		t.Fatalf("expected explicit title to not be clobbered by implicit update, got %q", m.Tabs[0].Title)
	}
}

func idSet(m *Manager) map[TabId]bool {
	s := make(map[TabId]bool)
	for _, t := range m.Tabs {
		s[t.ID] = true
	}
	return s
}

func sameSet(a, b map[TabId]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
