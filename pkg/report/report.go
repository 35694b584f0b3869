// Package report renders batch reports for humans (text) and machines
// (json, yaml).
package report

import (
	"fmt"
	"io"

	"github.com/dtnitsch/seo-meta-lint/models"
	"github.com/dtnitsch/seo-meta-lint/pkg/json"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Write renders batch to w in the given format.
func Write(w io.Writer, batch models.BatchReport, format models.Format) error {
	switch format {
	case models.FormatJSON:
		return writeJSON(w, batch)
	case models.FormatYAML:
		return writeYAML(w, batch)
	case models.FormatText, "":
		return writeText(w, batch)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// WriteRecords renders normalized records (the normalize command output).
func WriteRecords(w io.Writer, records []models.PageMetadata, format models.Format) error {
	var v any = records
	if len(records) == 1 {
		v = records[0]
	}
	switch format {
	case models.FormatJSON, models.FormatText, "":
		return encodeJSON(w, v)
	case models.FormatYAML:
		return encodeYAML(w, v)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func writeJSON(w io.Writer, batch models.BatchReport) error {
	out := struct {
		models.BatchReport
		Totals map[models.Severity]int `json:"totals"`
	}{batch, batch.Totals()}
	return encodeJSON(w, out)
}

func encodeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, batch models.BatchReport) error {
	out := struct {
		Pages     []models.PageReport     `yaml:"pages"`
		CrossPage []models.Finding        `yaml:"cross_page,omitempty"`
		Totals    map[models.Severity]int `yaml:"totals"`
	}{batch.Pages, batch.CrossPage, batch.Totals()}
	return encodeYAML(w, out)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error marshalling YAML: %w", err)
	}
	return enc.Close()
}

var (
	errorColor   = color.New(color.FgHiRed, color.Bold)
	warningColor = color.New(color.FgHiYellow, color.Bold)
	infoColor    = color.New(color.FgHiBlue)
	headColor    = color.New(color.FgWhite, color.Bold, color.Underline)
	okColor      = color.New(color.FgHiGreen, color.Bold)
)

// SeverityLabel returns the colored label for sev.
func SeverityLabel(sev models.Severity) string {
	return colorFor(sev).Sprint(string(sev))
}

func writeText(w io.Writer, batch models.BatchReport) error {
	for _, p := range batch.Pages {
		name := p.Source
		if name == "" {
			name = fmt.Sprintf("record #%d", p.Index)
		}
		headColor.Fprintln(w, name)

		if len(p.Report.Findings) == 0 {
			okColor.Fprintln(w, "  ✔ no findings")
			fmt.Fprintln(w)
			continue
		}
		if err := findingsTable(w, p.Report.Findings); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(batch.CrossPage) > 0 {
		headColor.Fprintln(w, "across pages")
		if err := findingsTable(w, batch.CrossPage); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	totals := batch.Totals()
	fmt.Fprintf(w, "%d page(s): %s, %s, %s\n",
		len(batch.Pages),
		plural(totals[models.SeverityError], models.SeverityError),
		plural(totals[models.SeverityWarning], models.SeverityWarning),
		plural(totals[models.SeverityInfo], models.SeverityInfo),
	)
	return nil
}

func findingsTable(w io.Writer, findings []models.Finding) error {
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Severity", "Code", "Message")
	for _, f := range findings {
		row := []string{f.Field, SeverityLabel(f.Severity), f.Code, f.Message}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func plural(n int, sev models.Severity) string {
	label := string(sev)
	if n != 1 {
		label += "s"
	}
	s := fmt.Sprintf("%d %s", n, label)
	if n == 0 {
		return s
	}
	return colorFor(sev).Sprint(s)
}

func colorFor(sev models.Severity) *color.Color {
	switch sev {
	case models.SeverityError:
		return errorColor
	case models.SeverityWarning:
		return warningColor
	}
	return infoColor
}
