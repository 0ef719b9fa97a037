package utils

// VisitLog counts how often each detail page was opened during a run.
// It is not safe for concurrent use.
type VisitLog struct {
	counts  map[string]int
	repeats int
}

func NewVisitLog() *VisitLog {
	return &VisitLog{counts: make(map[string]int)}
}

// Record notes a visit to url and returns how many times it has now been visited.
func (v *VisitLog) Record(url string) int {
	v.counts[url]++
	n := v.counts[url]
	if n > 1 {
		v.repeats++
	}
	return n
}

// Distinct returns the number of different URLs visited.
func (v *VisitLog) Distinct() int { return len(v.counts) }

// Repeats returns the number of visits to an already visited URL.
func (v *VisitLog) Repeats() int { return v.repeats }
