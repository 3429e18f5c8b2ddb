package session

import (
	"sync"

	"github.com/google/uuid"

	"datasheet/domain/sheet"
)

// Store owns the per-session UI state: the normalized table plus the
// selection flags the export resolves against. The core normalizer and
// renderer never see this state directly; handlers resolve it into an
// ordered record subset first.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*state
}

type state struct {
	filename  string
	hasHeader bool
	table     sheet.Table
	search    string

	// selectAll is the default for rows without an explicit toggle; a
	// fresh upload starts fully selected.
	selectAll bool
	toggled   map[int]bool
}

// RowView is one row of the current filtered view with its selection flag.
type RowView struct {
	Index   int
	Record  sheet.Record
	Checked bool
}

// View is the resolved state handlers render from: the filtered rows in
// order, each with its selection flag.
type View struct {
	Filename  string
	HasHeader bool
	Search    string
	SelectAll bool
	Rows      []RowView
	TotalRows int
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*state)}
}

// Create registers a new session and returns its ID.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &state{selectAll: true, toggled: make(map[int]bool)}
	return id
}

// Exists reports whether the session ID is known.
func (s *Store) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// SetTable replaces the session's table after a new upload. Search and
// selection state are reset; everything starts selected.
func (s *Store) SetTable(id string, table sheet.Table, filename string, hasHeader bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return
	}
	st.filename = filename
	st.hasHeader = hasHeader
	st.table = table
	st.search = ""
	st.selectAll = true
	st.toggled = make(map[int]bool)
}

// SetSearch updates the session's name filter. Row toggles keyed by
// positions in the previous view are discarded; the master flag stands.
func (s *Store) SetSearch(id, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return
	}
	st.search = term
	st.toggled = make(map[int]bool)
}

// ToggleRow flips the selection flag of one row in the current view.
func (s *Store) ToggleRow(id string, row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return
	}
	current := st.selectAll
	if v, ok := st.toggled[row]; ok {
		current = v
	}
	st.toggled[row] = !current
}

// SetAll bulk-sets every row's selection flag, clearing per-row toggles.
func (s *Store) SetAll(id string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[id]
	if !ok {
		return
	}
	st.selectAll = on
	st.toggled = make(map[int]bool)
}

// View resolves the session into its current filtered, flagged row list.
func (s *Store) View(id string) (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[id]
	if !ok {
		return View{}, false
	}

	filtered := st.table.FilterByName(st.search)
	rows := make([]RowView, 0, filtered.Len())
	for i, rec := range filtered.Records {
		checked := st.selectAll
		if v, ok := st.toggled[i]; ok {
			checked = v
		}
		rows = append(rows, RowView{Index: i, Record: rec, Checked: checked})
	}

	return View{
		Filename:  st.filename,
		HasHeader: st.hasHeader,
		Search:    st.search,
		SelectAll: st.selectAll,
		Rows:      rows,
		TotalRows: st.table.Len(),
	}, true
}

// Selected resolves the session into the ordered record subset to render.
func (s *Store) Selected(id string) []sheet.Record {
	view, ok := s.View(id)
	if !ok {
		return nil
	}
	records := make([]sheet.Record, 0, len(view.Rows))
	for _, row := range view.Rows {
		if row.Checked {
			records = append(records, row.Record)
		}
	}
	return records
}
