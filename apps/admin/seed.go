package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/selfcare/core/exam"
)

type demoApplication struct {
	draft exam.NewApplication
	// progress is applied stage by stage, starting from the first one
	progress []exam.StageUpdate
}

func demoApplications() []demoApplication {
	cleared, selected := exam.StatusCleared, exam.StatusSelected
	str := func(s string) *string { return &s }

	return []demoApplication{
		{
			draft: exam.NewApplication{
				Name:          "UPSC CSE",
				FeeAmount:     100,
				ExamDate:      "2024-05-26",
				Place:         "Delhi",
				PaymentStatus: exam.PaymentPaid,
				Notes:         "GS + CSAT",
				Stages:        []string{"Prelims", "Mains", "Interview"},
			},
			progress: []exam.StageUpdate{
				{Status: &cleared, Score: str("112.5"), Date: str("2024-05-26")},
				{Status: &cleared, Score: str("820"), Date: str("2024-09-20")},
			},
		},
		{
			draft: exam.NewApplication{
				Name:          "SSC CGL",
				FeeAmount:     100,
				ExamDate:      "2024-09-09",
				Place:         "Kolkata",
				PaymentStatus: exam.PaymentPaid,
				Stages:        []string{"Tier 1", "Tier 2", "Document Verification"},
			},
			progress: []exam.StageUpdate{
				{Status: &cleared, Score: str("148")},
				{Status: &cleared, Score: str("301")},
				{Status: &selected},
			},
		},
		{
			draft: exam.NewApplication{
				Name:          "SBI PO",
				FeeAmount:     750,
				ExamDate:      "2024-11-10",
				Place:         "Mumbai",
				PaymentStatus: exam.PaymentPending,
				Stages:        []string{"Prelims", "Mains", "Group Exercise & Interview"},
			},
		},
	}
}

// seed adds the demo applications to a profile, walking each one through its stages.
func (cli *commandLine) seed(ctx context.Context, profile string) error {
	for _, demo := range demoApplications() {
		draft := demo.draft
		if err := draft.Validate(cli.validate); err != nil {
			return err
		}
		app, err := cli.examSvc.Add(ctx, profile, draft)
		if err != nil {
			return err
		}
		for i, upd := range demo.progress {
			if app, err = cli.examSvc.EditStage(ctx, profile, app.ID, i, upd); err != nil {
				return errors.Wrapf(err, "seeding %q", draft.Name)
			}
		}
		prog := app.Progress()
		fmt.Fprintf(cli.out, "Added %q (%s): %d/%d stages done.\n", app.Name, app.ID, prog.Completed, prog.Total)
	}
	return nil
}
