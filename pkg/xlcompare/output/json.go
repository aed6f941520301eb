// Package output serializes comparison reports and sum results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/xlcompare-go/pkg/xlcompare/models"
)

// reportView is the serialized form of a Report with derived counts.
type reportView struct {
	Reference   string               `json:"reference"`
	Test        string               `json:"test"`
	Passed      bool                 `json:"passed"`
	PassedCount int                  `json:"passed_count"`
	Total       int                  `json:"total"`
	Checks      []models.CheckResult `json:"checks"`
}

func newReportView(r *models.Report) reportView {
	return reportView{
		Reference:   r.Reference,
		Test:        r.Test,
		Passed:      r.Passed(),
		PassedCount: r.PassedCount(),
		Total:       r.Total(),
		Checks:      r.Ordered(),
	}
}

// ReportToJSON serializes a comparison report.
func ReportToJSON(r *models.Report, pretty bool) ([]byte, error) {
	return marshal(newReportView(r), pretty)
}

// SumToJSON serializes a sum verification result.
func SumToJSON(r *models.SumResult, pretty bool) ([]byte, error) {
	return marshal(r, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
