package core

// Session is presentation-owned state: the key most recently selected by
// the user. It is the only state a presentation layer sets directly.
type Session struct {
	selected string
}

// Select makes key the current selection. An empty key clears it.
func (s *Session) Select(key string) {
	s.selected = key
}

// Selected returns the current selection, if any.
func (s *Session) Selected() (string, bool) {
	return s.selected, s.selected != ""
}

// Clear drops the selection.
func (s *Session) Clear() {
	s.selected = ""
}
