package components

// orderedSet keeps insertion order so events fire in the order pairs were
// found.
type orderedSet[K comparable] struct {
	keys  []K
	index map[K]struct{}
}

func (s *orderedSet[K]) add(k K) bool {
	if s.index == nil {
		s.index = make(map[K]struct{})
	}
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.keys = append(s.keys, k)
	return true
}

func (s *orderedSet[K]) has(k K) bool {
	_, ok := s.index[k]
	return ok
}

func (s *orderedSet[K]) clear() {
	s.keys = s.keys[:0]
	clear(s.index)
}

func (s *orderedSet[K]) len() int { return len(s.keys) }

// rollingSet compares what was seen this step against the previous step.
type rollingSet[K comparable] struct {
	last    orderedSet[K]
	current orderedSet[K]
}

func (r *rollingSet[K]) record(k K) {
	r.current.add(k)
}

// roll reports new keys to begin, kept keys to stay and missing keys to
// end, then makes this step's set the previous one and empties the other.
func (r *rollingSet[K]) roll(begin, stay, end func(K)) {
	for _, k := range r.current.keys {
		if r.last.has(k) {
			stay(k)
		} else {
			begin(k)
		}
	}
	for _, k := range r.last.keys {
		if !r.current.has(k) {
			end(k)
		}
	}
	r.last, r.current = r.current, r.last
	r.current.clear()
}
