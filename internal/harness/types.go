package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true if every case passed.
	Pass bool `json:"pass"`

	// Cases holds one entry per case, in scenario order.
	Cases []CaseResult `json:"cases"`
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name      string   `json:"name"`
	Pass      bool     `json:"pass"`
	Input     string   `json:"input,omitempty"`
	Outcome   string   `json:"outcome,omitempty"`
	Realized  string   `json:"realized,omitempty"`
	Steps     int      `json:"steps"`
	PeakDepth int      `json:"peak_depth"`
	Errors    []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Cases:    []CaseResult{},
	}
}

// Add appends a case result, failing r if the case failed.
func (r *Result) Add(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if !c.Pass {
		r.Pass = false
	}
}

// Failed returns the cases that did not pass.
func (r *Result) Failed() []CaseResult {
	var out []CaseResult
	for _, c := range r.Cases {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}

// AddError records a mismatch and marks the case failed.
func (c *CaseResult) AddError(err string) {
	c.Errors = append(c.Errors, err)
	c.Pass = false
}
