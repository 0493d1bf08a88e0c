package models

// Quadrant is the urgency/importance classification of a task or rock.
type Quadrant string

const (
	QuadrantI   Quadrant = "I"   // urgent, important
	QuadrantII  Quadrant = "II"  // not urgent, important
	QuadrantIII Quadrant = "III" // urgent, not important
	QuadrantIV  Quadrant = "IV"  // neither
)

// Quadrants lists every quadrant in matrix order.
var Quadrants = []Quadrant{QuadrantI, QuadrantII, QuadrantIII, QuadrantIV}

func (q Quadrant) Valid() bool {
	switch q {
	case QuadrantI, QuadrantII, QuadrantIII, QuadrantIV:
		return true
	}
	return false
}

type Priority string

const (
	PriorityA Priority = "A"
	PriorityB Priority = "B"
	PriorityC Priority = "C"
)

// Rank orders priorities A before B before C.
func (p Priority) Rank() int {
	switch p {
	case PriorityA:
		return 0
	case PriorityB:
		return 1
	case PriorityC:
		return 2
	}
	return 3
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

type ValueCategory string

const (
	CategoryPersonal      ValueCategory = "personal"
	CategoryRelationships ValueCategory = "relationships"
	CategoryProfessional  ValueCategory = "professional"
	CategoryFinancial     ValueCategory = "financial"
	CategorySpiritual     ValueCategory = "spiritual"
)
