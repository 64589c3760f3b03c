package views

import "github.com/aristath/riskdesk/internal/domain"

// Selection is the portfolio list of a page and the portfolio its dependent
// data is scoped to.
type Selection struct {
	Portfolios []domain.Portfolio
	Selected   *domain.Portfolio
}

// SelectedID returns the id of the selected portfolio, or "".
func (s *Selection) SelectedID() string {
	if s.Selected == nil {
		return ""
	}
	return s.Selected.ID
}

// HasSelection reports whether a portfolio is selected.
func (s *Selection) HasSelection() bool {
	return s.Selected != nil
}

// Find returns the portfolio with the given id.
func (s *Selection) Find(id string) (*domain.Portfolio, bool) {
	for i := range s.Portfolios {
		if s.Portfolios[i].ID == id {
			p := s.Portfolios[i]
			return &p, true
		}
	}
	return nil, false
}

// Index returns the position of the selection in Portfolios, or -1.
func (s *Selection) Index() int {
	id := s.SelectedID()
	for i := range s.Portfolios {
		if s.Portfolios[i].ID == id {
			return i
		}
	}
	return -1
}

// reconcile replaces the list and re-points the selection: the current
// portfolio is kept when it still exists, otherwise the first one is taken.
// It reports whether the selected id changed.
func (s *Selection) reconcile(portfolios []domain.Portfolio) bool {
	prev := s.SelectedID()
	s.Portfolios = nonNil(portfolios)

	if p, ok := s.Find(prev); ok && prev != "" {
		s.Selected = p
		return false
	}
	if len(s.Portfolios) == 0 {
		s.Selected = nil
		return prev != ""
	}
	first := s.Portfolios[0]
	s.Selected = &first
	return first.ID != prev
}

// choose moves the selection to id. Unknown ids and the current selection
// are ignored; the return value reports whether anything changed.
func (s *Selection) choose(id string) bool {
	if id == s.SelectedID() {
		return false
	}
	p, ok := s.Find(id)
	if !ok {
		return false
	}
	s.Selected = p
	return true
}

// clear drops the list and the selection.
func (s *Selection) clear() {
	s.Portfolios = []domain.Portfolio{}
	s.Selected = nil
}
