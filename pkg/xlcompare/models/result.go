package models

// Check names, in report order.
const (
	CheckColumns          = "columns"
	CheckDataTypes        = "data_types"
	CheckCellFormats      = "cell_formats"
	CheckNumericPrecision = "numeric_precision"
	CheckNullHandling     = "null_handling"
	CheckRowCount         = "row_count"
)

// CheckOrder lists every check name in report order.
var CheckOrder = []string{
	CheckColumns,
	CheckDataTypes,
	CheckCellFormats,
	CheckNumericPrecision,
	CheckNullHandling,
	CheckRowCount,
}

// CheckResult is the verdict of one comparison check.
type CheckResult struct {
	// Name is the check name.
	Name string `json:"name"`
	// Passed is true when no issue was found.
	Passed bool `json:"passed"`
	// Issues lists human-readable discrepancies in discovery order.
	Issues []string `json:"issues"`
	// ReferenceColumns is the reference column list (columns check only).
	ReferenceColumns []string `json:"reference_columns,omitempty"`
	// TestColumns is the test column list (columns check only).
	TestColumns []string `json:"test_columns,omitempty"`
	// ReferenceRows is the reference row count (row count check only).
	ReferenceRows *int `json:"reference_rows,omitempty"`
	// TestRows is the test row count (row count check only).
	TestRows *int `json:"test_rows,omitempty"`
}

// NewCheckResult returns a result whose verdict follows from issues.
func NewCheckResult(name string, issues []string) CheckResult {
	if issues == nil {
		issues = []string{}
	}
	return CheckResult{
		Name:   name,
		Passed: len(issues) == 0,
		Issues: issues,
	}
}

// Report maps check names to results for one comparison.
type Report struct {
	// Reference is the reference document name.
	Reference string `json:"reference"`
	// Test is the test document name.
	Test string `json:"test"`
	// Results maps check name to its result.
	Results map[string]CheckResult `json:"results"`
}

// Ordered returns the results in CheckOrder, skipping absent checks.
func (r *Report) Ordered() []CheckResult {
	out := make([]CheckResult, 0, len(r.Results))
	for _, name := range CheckOrder {
		if res, ok := r.Results[name]; ok {
			out = append(out, res)
		}
	}
	return out
}

// PassedCount returns how many checks passed.
func (r *Report) PassedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// Total returns the number of checks in the report.
func (r *Report) Total() int {
	return len(r.Results)
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	return r.PassedCount() == r.Total()
}

// SumResult is the outcome of a sum verification.
type SumResult struct {
	// Passed is true when the range sum equals the target value.
	Passed bool `json:"passed"`
	// Error describes why verification could not be completed.
	Error string `json:"error,omitempty"`
	// Values lists the numeric values that were summed, in range order.
	Values []float64 `json:"values"`
	// Sum is the total of Values.
	Sum float64 `json:"sum"`
	// Target is the target cell value, nil when unavailable.
	Target *float64 `json:"target"`
	// CellRange is the range text as supplied.
	CellRange string `json:"cell_range,omitempty"`
	// TargetCell is the target address text as supplied.
	TargetCell string `json:"target_cell,omitempty"`
	// CellsCount is the number of summed cells.
	CellsCount int `json:"cells_count"`
}

// Difference returns |Sum - Target|, or 0 when there is no target.
func (r *SumResult) Difference() float64 {
	if r.Target == nil {
		return 0
	}
	d := r.Sum - *r.Target
	if d < 0 {
		return -d
	}
	return d
}
