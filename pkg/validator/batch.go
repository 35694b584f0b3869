package validator

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/seo-meta-lint/models"
	"golang.org/x/sync/errgroup"
)

// Page is one record in a batch, with an optional origin label
// (file name, file#index).
type Page struct {
	Source string
	Meta   models.PageMetadata
}

// ValidateAll validates pages concurrently with a bounded pool. Reports
// keep input order. Duplicate titles across pages are reported as
// cross-page findings.
func (v *Validator) ValidateAll(pages []Page) models.BatchReport {
	reports := make([]models.PageReport, len(pages))

	var g errgroup.Group
	g.SetLimit(v.workers)
	for i, p := range pages {
		g.Go(func() error {
			reports[i] = models.PageReport{
				Index:  i,
				Source: p.Source,
				Report: v.Validate(p.Meta),
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	return models.BatchReport{
		Pages:     reports,
		CrossPage: DuplicateTitles(pages),
	}
}

// DuplicateTitles returns one warning per title shared by more than one
// page, in order of first appearance. Comparison ignores case and
// surrounding whitespace; empty titles are skipped.
func DuplicateTitles(pages []Page) []models.Finding {
	groups := map[string][]int{}
	var order []string
	for i, p := range pages {
		key := strings.ToLower(strings.TrimSpace(p.Meta.Title))
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var out []models.Finding
	for _, key := range order {
		idx := groups[key]
		if len(idx) < 2 {
			continue
		}
		labels := make([]string, len(idx))
		for j, i := range idx {
			labels[j] = pageLabel(pages[i], i)
		}
		out = append(out, models.Finding{
			Field:    FieldTitle,
			Severity: models.SeverityWarning,
			Code:     "title_duplicate",
			Message: fmt.Sprintf("title %q is shared by %d pages: %s",
				strings.TrimSpace(pages[idx[0]].Meta.Title), len(idx), strings.Join(labels, ", ")),
		})
	}
	return out
}

func pageLabel(p Page, i int) string {
	if p.Source != "" {
		return p.Source
	}
	return fmt.Sprintf("#%d", i)
}
