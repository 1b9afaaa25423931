package cleaning

import "time"

// Report summarizes what a cleaning pass changed, per table.
type Report struct {
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Deleted   map[string]int64 `json:"deleted"`
	Renamed   map[string]int64 `json:"renamed"`
	Repointed map[string]int64 `json:"repointed"`
}

func newReport() *Report {
	return &Report{
		StartedAt: time.Now(),
		Deleted:   make(map[string]int64),
		Renamed:   make(map[string]int64),
		Repointed: make(map[string]int64),
	}
}

// Changed reports whether the pass modified any row.
func (r *Report) Changed() bool {
	for _, m := range []map[string]int64{r.Deleted, r.Renamed, r.Repointed} {
		for _, n := range m {
			if n > 0 {
				return true
			}
		}
	}
	return false
}

// Total returns the number of rows touched.
func (r *Report) Total() int64 {
	var total int64
	for _, m := range []map[string]int64{r.Deleted, r.Renamed, r.Repointed} {
		for _, n := range m {
			total += n
		}
	}
	return total
}
