package domain

import "fmt"

// ComplianceVerdict is the drug-label check result for one ingredient
type ComplianceVerdict struct {
	Ingredient string `json:"ingredient"`
	Approved   bool   `json:"approved"`
	Text       string `json:"verdict"`
	// Unavailable is set when the label database could not be queried.
	// Text then still reads as not found.
	Unavailable bool `json:"unavailable,omitempty"`
}

// NewApprovedVerdict builds the verdict for an ingredient present in drug labels
func NewApprovedVerdict(ingredient string) ComplianceVerdict {
	return ComplianceVerdict{
		Ingredient: ingredient,
		Approved:   true,
		Text:       fmt.Sprintf("%s: FDA approved.", ingredient),
	}
}

// NewNotFoundVerdict builds the verdict for an ingredient absent from drug labels
func NewNotFoundVerdict(ingredient string, unavailable bool) ComplianceVerdict {
	return ComplianceVerdict{
		Ingredient:  ingredient,
		Text:        fmt.Sprintf("%s: Not found in FDA approved list.", ingredient),
		Unavailable: unavailable,
	}
}

// String returns the verdict text
func (v ComplianceVerdict) String() string {
	return v.Text
}

// ComplianceReport flattens verdicts into their display lines
func ComplianceReport(verdicts []ComplianceVerdict) []string {
	report := make([]string, 0, len(verdicts))
	for _, v := range verdicts {
		report = append(report, v.Text)
	}
	return report
}
