// Package tabs implements the Tab Manager (spec.md §4.6, C6): an
// ordered collection of per-tab PaneTrees with an active index,
// create/close/move, and title derivation. No teacher file models a
// tab strip (openkanban is single-pane, single-view); this package
// follows the spec directly in the pack's idiom of small structs with
// plain methods and no locking, mutated only from the main-loop
// goroutine per spec.md §5.
package tabs

import "github.com/veloterm/veloterm/internal/layout"

// TabId is an opaque, process-lifetime-stable tab identifier.
type TabId uint64

// Tab is one entry in the TabManager (spec.md §3 Tab).
type Tab struct {
	ID              TabId
	Title           string
	Tree            *layout.PaneTree
	HasNotification bool
	TitleIsExplicit bool
}

// Manager is the ordered collection of tabs with an active index
// (spec.md §3 TabManager).
type Manager struct {
	Tabs        []*Tab
	ActiveIndex int

	nextTabID   TabId
	nextPaneID  layout.PaneId
}

// New creates a Manager with one tab containing a single-leaf PaneTree.
func New() *Manager {
	m := &Manager{}
	t := m.makeTab()
	m.Tabs = []*Tab{t}
	m.ActiveIndex = 0
	return m
}

func (m *Manager) makeTab() *Tab {
	m.nextTabID++
	return &Tab{
		ID:   m.nextTabID,
		Tree: layout.New(&m.nextPaneID),
	}
}

// Active returns the currently active tab.
func (m *Manager) Active() *Tab {
	return m.Tabs[m.ActiveIndex]
}

// NewTab appends a tab and moves the active index to it, returning its id.
func (m *Manager) NewTab() TabId {
	t := m.makeTab()
	m.Tabs = append(m.Tabs, t)
	m.ActiveIndex = len(m.Tabs) - 1
	return t.ID
}

// CloseTab removes the tab at index i and returns the PaneIds its tree
// contained (so the caller can release their PTYs), or (nil, false)
// when closing would leave zero tabs.
func (m *Manager) CloseTab(i int) ([]layout.PaneId, bool) {
	if i < 0 || i >= len(m.Tabs) {
		return nil, false
	}
	if len(m.Tabs) == 1 {
		return nil, false
	}

	ids := m.Tabs[i].Tree.Leaves()
	m.Tabs = append(m.Tabs[:i], m.Tabs[i+1:]...)

	if m.ActiveIndex >= len(m.Tabs) {
		m.ActiveIndex = len(m.Tabs) - 1
	} else if i < m.ActiveIndex {
		m.ActiveIndex--
	}
	return ids, true
}

// SelectTab clamps i to [0, len) and activates it.
func (m *Manager) SelectTab(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(m.Tabs) {
		i = len(m.Tabs) - 1
	}
	m.ActiveIndex = i
	m.Tabs[i].HasNotification = false
}

// NextTab activates the following tab, wrapping to 0.
func (m *Manager) NextTab() {
	m.SelectTab((m.ActiveIndex + 1) % len(m.Tabs))
}

// PrevTab activates the preceding tab, wrapping to the last.
func (m *Manager) PrevTab() {
	m.SelectTab((m.ActiveIndex - 1 + len(m.Tabs)) % len(m.Tabs))
}

// MoveTab reorders the tab at index from to index to, preserving the
// active tab's identity across the reorder (spec.md §8 property 8).
func (m *Manager) MoveTab(from, to int) {
	if from < 0 || from >= len(m.Tabs) || to < 0 || to >= len(m.Tabs) || from == to {
		return
	}
	activeID := m.Tabs[m.ActiveIndex].ID

	t := m.Tabs[from]
	m.Tabs = append(m.Tabs[:from], m.Tabs[from+1:]...)
	m.Tabs = append(m.Tabs[:to], append([]*Tab{t}, m.Tabs[to:]...)...)

	for i, tab := range m.Tabs {
		if tab.ID == activeID {
			m.ActiveIndex = i
			break
		}
	}
}

// SetTitle sets tab i's title. When explicit is false, the title is
// only written if no explicit title was previously set (spec.md §4.6):
// an OSC-derived title never clobbers a user-set one.
func (m *Manager) SetTitle(i int, title string, explicit bool) {
	if i < 0 || i >= len(m.Tabs) {
		return
	}
	tab := m.Tabs[i]
	if !explicit && tab.TitleIsExplicit {
		return
	}
	tab.Title = title
	if explicit {
		tab.TitleIsExplicit = true
	}
}
