package model

// Status is the outcome recorded for one source file.
type Status string

const (
	// StatusConformant means the primary type passed the rule.
	StatusConformant Status = "conformant"
	// StatusViolation means the primary type nests too deeply.
	StatusViolation Status = "violation"
	// StatusSkipped means the file declares no type to check.
	StatusSkipped Status = "skipped"
	// StatusError means the file could not be read or parsed.
	StatusError Status = "error"
)

// Report is the persisted evaluation of one source file.
type Report struct {
	Path      Path      `yaml:"path"`
	Hash      string    `yaml:"hash"`
	TypeName  string    `yaml:"type,omitempty"`
	Methods   int       `yaml:"methods,omitempty"`
	Status    Status    `yaml:"status"`
	Message   string    `yaml:"message,omitempty"`
	Detection Detection `yaml:"detection,omitempty"`
	Method    string    `yaml:"method,omitempty"`
	Line      int       `yaml:"line,omitempty"`
	Error     string    `yaml:"error,omitempty"`
}

// Failed reports whether the report should fail a check run.
func (r Report) Failed() bool {
	return r.Status == StatusViolation || r.Status == StatusError
}

// Summary counts reports per status.
type Summary struct {
	Total      int
	Conformant int
	Violations int
	Skipped    int
	Errors     int
}

// Summarize tallies reports by status.
func Summarize(reports []Report) Summary {
	summary := Summary{Total: len(reports)}

	for _, report := range reports {
		switch report.Status {
		case StatusConformant:
			summary.Conformant++
		case StatusViolation:
			summary.Violations++
		case StatusSkipped:
			summary.Skipped++
		case StatusError:
			summary.Errors++
		}
	}

	return summary
}

// Failed reports whether any report should fail the run.
func (s Summary) Failed() bool {
	return s.Violations > 0 || s.Errors > 0
}
