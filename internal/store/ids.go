package store

import "time"

// idSource hands out millisecond timestamps, bumping by one whenever the
// clock would repeat or go back.
type idSource struct {
	now  func() time.Time
	last int64
}

func (s *idSource) next() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// observe makes sure ids already in use are never handed out again.
func (s *idSource) observe(id int64) {
	if id > s.last {
		s.last = id
	}
}
