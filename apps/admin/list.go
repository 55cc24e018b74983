package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/selfcare/core"
	"github.com/trezcool/selfcare/core/exam"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (cli *commandLine) list(ctx context.Context, profile string, archived bool, format string) error {
	ord := core.Ordering{Field: exam.OrderByExamDate, Ascending: true}

	var apps []exam.Application
	var err error
	if archived {
		apps, err = cli.examSvc.Archived(ctx, profile, ord)
	} else {
		apps, err = cli.examSvc.List(ctx, profile, ord)
	}
	if err != nil {
		return err
	}

	switch cli.outputFormat(format) {
	case formatTable:
		return writeTable(cli.out, apps)
	case formatYAML:
		return writeYAML(cli.out, apps)
	default:
		return writeJSON(cli.out, apps)
	}
}

// export dumps active and archived applications, archive last.
func (cli *commandLine) export(ctx context.Context, profile, format string) error {
	apps, err := cli.examSvc.History(ctx, profile)
	if err != nil {
		return err
	}
	if format == formatYAML {
		return writeYAML(cli.out, apps)
	}
	return writeJSON(cli.out, apps)
}

func writeJSON(w io.Writer, apps []exam.Application) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(apps)
}

func writeYAML(w io.Writer, apps []exam.Application) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(apps); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, apps []exam.Application) error {
	if len(apps) == 0 {
		_, err := fmt.Fprintln(w, "No applications.")
		return err
	}

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		prog := app.Progress()
		rows = append(rows, []string{
			app.ID,
			app.Name,
			app.ExamDate,
			app.Place,
			strconv.FormatFloat(app.FeeAmount, 'f', 2, 64),
			app.PaymentStatus.Label(),
			fmt.Sprintf("%d/%d (%d%%)", prog.Completed, prog.Total, prog.Percentage),
			currentStage(app),
			app.FinalStatus.Label(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "EXAM", "DATE", "PLACE", "FEE", "PAYMENT", "PROGRESS", "CURRENT STAGE", "RESULT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// currentStage describes the first stage that is not completed yet.
func currentStage(app exam.Application) string {
	for _, st := range app.Stages {
		if !st.Status.Completed() {
			return st.Name + ": " + st.Status.LabelFor(st.Kind)
		}
	}
	return "Done"
}
