package exam

import (
	"sort"
	"strings"

	"github.com/trezcool/selfcare/core"
)

// Metrics are the self-care dashboard counters.
type Metrics struct {
	TotalApplied       int `json:"total_applied"`
	PrelimsCleared     int `json:"prelims_cleared"`
	MainsCleared       int `json:"mains_cleared"`
	InterviewsAttended int `json:"interviews_attended"`
}

// GetMetrics counts over active and archived applications alike.
func GetMetrics(active, archived []Application) Metrics {
	apps := History(active, archived)
	m := Metrics{TotalApplied: len(apps)}
	for _, app := range apps {
		if hasStage(app, "prelim", func(st Status) bool { return st == StatusCleared }) {
			m.PrelimsCleared++
		}
		if hasStage(app, "mains", func(st Status) bool { return st == StatusCleared }) {
			m.MainsCleared++
		}
		if hasStage(app, "interview", attended) {
			m.InterviewsAttended++
		}
	}
	return m
}

func attended(st Status) bool {
	return st != StatusPending && st != StatusNA && st != ""
}

func hasStage(app Application, name string, match func(Status) bool) bool {
	for _, stage := range app.Stages {
		if strings.Contains(strings.ToLower(stage.Name), name) && match(stage.Status) {
			return true
		}
	}
	return false
}

// StageView is a Stage as displayed on a progress bar.
type StageView struct {
	Stage
	Index             int            `json:"index"`
	Final             bool           `json:"final"`
	Editable          bool           `json:"editable"`
	Label             string         `json:"label"`
	Reason            *Reason        `json:"reason,omitempty"`
	AvailableStatuses []StatusOption `json:"available_statuses"`
}

// StageBoard is everything needed to render the stages of an application.
type StageBoard struct {
	ApplicationID string      `json:"application_id"`
	Stages        []StageView `json:"stages"`
	Progress      Progress    `json:"progress"`
}

func NewStageBoard(app Application) StageBoard {
	board := StageBoard{
		ApplicationID: app.ID,
		Stages:        make([]StageView, 0, len(app.Stages)),
		Progress:      GetProgress(app.Stages),
	}
	for i, stage := range app.Stages {
		view := StageView{
			Stage:             stage,
			Index:             i,
			Final:             IsFinalStage(app.Stages, i),
			Editable:          IsStageEditable(app.Stages, i),
			Label:             stage.Status.LabelFor(kindAt(app.Stages, i)),
			AvailableStatuses: AvailableStatuses(app.Stages, i),
		}
		if !view.Editable {
			reason := DisabledReason(app.Stages, i)
			view.Reason = &reason
		}
		board.Stages = append(board.Stages, view)
	}
	return board
}

// Ordering fields
const (
	OrderByName      = "name"
	OrderByExamDate  = "exam_date"
	OrderByFeeAmount = "fee_amount"
	OrderByCreatedAt = "created_at"
)

// SortApplications stable-sorts apps in place by orderings; unknown fields are ignored.
func SortApplications(apps []Application, orderings ...core.Ordering) {
	if len(orderings) == 0 {
		return
	}
	sort.SliceStable(apps, func(i, j int) bool {
		for _, ord := range orderings {
			c := compareBy(apps[i], apps[j], ord.Field)
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
}

func compareBy(a, b Application, field string) int {
	switch field {
	case OrderByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case OrderByExamDate:
		return strings.Compare(a.ExamDate, b.ExamDate)
	case OrderByFeeAmount:
		switch {
		case a.FeeAmount < b.FeeAmount:
			return -1
		case a.FeeAmount > b.FeeAmount:
			return 1
		}
	case OrderByCreatedAt:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
	}
	return 0
}
