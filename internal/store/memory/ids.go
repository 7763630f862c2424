package memory

// sequence hands out ids the way an autoincrement column does: starting at
// one and never reused after a delete.
type sequence struct {
	last int64
}

func (s *sequence) next() int64 {
	s.last++
	return s.last
}
