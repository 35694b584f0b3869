package models

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is a single validation result for one field.
type Finding struct {
	Field    string   `json:"field" yaml:"field"`
	Severity Severity `json:"severity" yaml:"severity"`
	Code     string   `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
}

// ValidationReport is the outcome of validating one record: the record with
// defaults applied, plus findings in rule order.
type ValidationReport struct {
	Normalized PageMetadata `json:"normalized" yaml:"normalized"`
	Findings   []Finding    `json:"findings" yaml:"findings"`
}

// HasErrors reports whether any finding has error severity.
func (r ValidationReport) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Count returns the number of findings with the given severity.
func (r ValidationReport) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// FindingsFor returns the findings reported for field, in order.
func (r ValidationReport) FindingsFor(field string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Field == field {
			out = append(out, f)
		}
	}
	return out
}

// PageReport ties a report to its position and origin in a batch.
type PageReport struct {
	Index  int              `json:"index" yaml:"index"`
	Source string           `json:"source,omitempty" yaml:"source,omitempty"`
	Report ValidationReport `json:"report" yaml:"report"`
}

// BatchReport holds per-page reports plus findings that only make sense
// across pages (duplicate titles).
type BatchReport struct {
	Pages     []PageReport `json:"pages" yaml:"pages"`
	CrossPage []Finding    `json:"cross_page,omitempty" yaml:"cross_page,omitempty"`
}

// Totals sums findings by severity over all pages and cross-page findings.
func (b BatchReport) Totals() map[Severity]int {
	totals := map[Severity]int{SeverityError: 0, SeverityWarning: 0, SeverityInfo: 0}
	for _, p := range b.Pages {
		for _, f := range p.Report.Findings {
			totals[f.Severity]++
		}
	}
	for _, f := range b.CrossPage {
		totals[f.Severity]++
	}
	return totals
}

// HasErrors reports whether any page or cross-page finding is an error.
func (b BatchReport) HasErrors() bool {
	return b.Totals()[SeverityError] > 0
}
