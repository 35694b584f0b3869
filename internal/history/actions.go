package history

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dtnitsch/seo-meta-lint/internal/common"
	"github.com/dtnitsch/seo-meta-lint/models"
	dbpkg "github.com/dtnitsch/seo-meta-lint/pkg/db"
	"github.com/dtnitsch/seo-meta-lint/pkg/report"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

const timeFormat = "2006-01-02 15:04:05"

func openDB(c *cli.Context) (*dbpkg.DB, error) {
	cfg, err := common.LoadConfig(c)
	if err != nil {
		return nil, err
	}
	database, err := dbpkg.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// ListAction prints the most recent runs.
func ListAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	database, err := openDB(c)
	if err != nil {
		return common.Fail(logger, "failed to open history", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return common.Fail(logger, "failed to list runs", err)
	}
	if err := writeRuns(os.Stdout, runs); err != nil {
		return common.Fail(logger, "failed to render runs", err)
	}
	return nil
}

func writeRuns(w io.Writer, runs []dbpkg.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Run", "Created", "Pages", "Errors", "Warnings", "Info", "Source")
	for _, r := range runs {
		row := []string{
			r.RunID,
			r.CreatedAt.Local().Format(timeFormat),
			strconv.Itoa(r.PageCount),
			strconv.Itoa(r.ErrorCount),
			strconv.Itoa(r.WarningCount),
			strconv.Itoa(r.InfoCount),
			r.Source,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'seolint history show <run-id>' to see findings\n")
	return nil
}

// ShowAction prints one run's pages and findings. No argument (or
// "latest") shows the most recent run.
func ShowAction(c *cli.Context) error {
	logger := common.NewLogger(c)
	database, err := openDB(c)
	if err != nil {
		return common.Fail(logger, "failed to open history", err)
	}
	defer database.Close()

	runID, err := runIDOrLatest(c, database)
	if err != nil {
		return cli.Exit(err.Error(), common.ExitFindings)
	}

	run, err := database.GetRun(runID)
	if errors.Is(err, dbpkg.ErrRunNotFound) {
		return cli.Exit(fmt.Sprintf("run %s not found", runID), common.ExitFindings)
	}
	if err != nil {
		return common.Fail(logger, "failed to get run", err, "run_id", runID)
	}
	pages, err := database.GetRunPages(runID)
	if err != nil {
		return common.Fail(logger, "failed to get run pages", err, "run_id", runID)
	}
	findings, err := database.GetRunFindings(runID)
	if err != nil {
		return common.Fail(logger, "failed to get run findings", err, "run_id", runID)
	}

	if err := writeRun(os.Stdout, run, pages, findings); err != nil {
		return common.Fail(logger, "failed to render run", err)
	}
	return nil
}

func runIDOrLatest(c *cli.Context, database *dbpkg.DB) (string, error) {
	if c.NArg() > 0 && c.Args().First() != "latest" {
		return c.Args().First(), nil
	}
	runID, err := database.LatestRunID()
	if errors.Is(err, dbpkg.ErrRunNotFound) {
		return "", fmt.Errorf("no runs found. Run 'seolint validate --record ...' first")
	}
	return runID, err
}

func writeRun(w io.Writer, run *dbpkg.Run, pages []dbpkg.RunPage, findings []dbpkg.StoredFinding) error {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "Run %s\n", run.RunID)
	fmt.Fprintf(w, "Created:  %s\n", run.CreatedAt.Local().Format(timeFormat))
	fmt.Fprintf(w, "Source:   %s\n", run.Source)
	fmt.Fprintf(w, "Pages:    %d (%d errors, %d warnings, %d info)\n\n",
		run.PageCount, run.ErrorCount, run.WarningCount, run.InfoCount)

	byPage := map[int][]models.Finding{}
	var cross []models.Finding
	for _, f := range findings {
		if !f.PageIndex.Valid {
			cross = append(cross, f.Finding)
			continue
		}
		idx := int(f.PageIndex.Int64)
		byPage[idx] = append(byPage[idx], f.Finding)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Page", "Field", "Severity", "Code", "Message")
	for _, p := range pages {
		label := p.Source
		if label == "" {
			label = fmt.Sprintf("#%d", p.PageIndex)
		}
		for _, f := range byPage[p.PageIndex] {
			if err := table.Append([]string{label, f.Field, report.SeverityLabel(f.Severity), f.Code, f.Message}); err != nil {
				return err
			}
		}
	}
	for _, f := range cross {
		if err := table.Append([]string{"(batch)", f.Field, report.SeverityLabel(f.Severity), f.Code, f.Message}); err != nil {
			return err
		}
	}
	return table.Render()
}
