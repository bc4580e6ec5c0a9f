package domain

// Status is the outcome of a normalization run.
type Status int

const (
	// StatusUnchanged means every table was already sorted.
	StatusUnchanged Status = 0
	// StatusChanged means at least one table was reordered.
	StatusChanged Status = 1
	// StatusError means the tool could not complete.
	StatusError Status = 2
)

// ExitCode returns the process exit code for the status.
func (s Status) ExitCode() int {
	return int(s)
}

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusChanged:
		return "changed"
	default:
		return "error"
	}
}

// TableResult describes what happened to one table.
type TableResult struct {
	Path    string
	Missing bool
	Changed bool
	Pinned  bool
	Before  []string
	After   []string
}

// Report describes the normalization of one manifest.
type Report struct {
	Path    string
	Poetry  bool
	Written bool
	Tables  []TableResult
}

// Changed reports whether any table of the manifest was reordered.
func (r *Report) Changed() bool {
	for _, t := range r.Tables {
		if t.Changed {
			return true
		}
	}
	return false
}

// Status returns the status of the run.
func (r *Report) Status() Status {
	if r.Changed() {
		return StatusChanged
	}
	return StatusUnchanged
}

// CombinedStatus folds the statuses of several reports.
func CombinedStatus(reports []*Report) Status {
	for _, r := range reports {
		if r != nil && r.Changed() {
			return StatusChanged
		}
	}
	return StatusUnchanged
}
