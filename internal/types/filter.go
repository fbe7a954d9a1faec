//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// JobFilter selects jobs by a case-insensitive search term over title,
// company and location, and optionally by job type.
type JobFilter struct {
	Search string
	Type   JobType
}

// Match reports whether job passes the filter.
func (f JobFilter) Match(job JobRecord) bool {
	if f.Type != "" && job.JobType != f.Type {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, s := range []string{job.JobTitle, job.Company, job.JobLocation} {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// FilterJobs returns the jobs matching f, preserving order.
func FilterJobs(jobs []JobRecord, f JobFilter) []JobRecord {
	out := make([]JobRecord, 0, len(jobs))
	for _, job := range jobs {
		if f.Match(job) {
			out = append(out, job)
		}
	}
	return out
}
