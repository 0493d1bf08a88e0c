package models

// QuadrantMinutes holds completed-task minutes per quadrant for one week.
type QuadrantMinutes struct {
	QuadrantI   int `json:"quadrant_I"`
	QuadrantII  int `json:"quadrant_II"`
	QuadrantIII int `json:"quadrant_III"`
	QuadrantIV  int `json:"quadrant_IV"`
}

func (m QuadrantMinutes) Get(q Quadrant) int {
	switch q {
	case QuadrantI:
		return m.QuadrantI
	case QuadrantII:
		return m.QuadrantII
	case QuadrantIII:
		return m.QuadrantIII
	case QuadrantIV:
		return m.QuadrantIV
	}
	return 0
}

// Add adds delta minutes to q, never letting the bucket go below zero.
func (m *QuadrantMinutes) Add(q Quadrant, delta int) {
	var bucket *int
	switch q {
	case QuadrantI:
		bucket = &m.QuadrantI
	case QuadrantII:
		bucket = &m.QuadrantII
	case QuadrantIII:
		bucket = &m.QuadrantIII
	case QuadrantIV:
		bucket = &m.QuadrantIV
	default:
		return
	}
	*bucket += delta
	if *bucket < 0 {
		*bucket = 0
	}
}

func (m QuadrantMinutes) Total() int {
	return m.QuadrantI + m.QuadrantII + m.QuadrantIII + m.QuadrantIV
}

// QuadrantStats maps a week id to the minutes tracked in that week.
type QuadrantStats map[string]QuadrantMinutes
