package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/selfcare/core"
)

func appWithStages(id string, stages ...Stage) Application {
	return Application{ID: id, Name: id, Stages: stages}
}

func TestGetMetrics(t *testing.T) {
	active := []Application{
		appWithStages("upsc",
			Stage{Name: "Prelims", Status: StatusCleared},
			Stage{Name: "Mains", Status: StatusCleared},
			Stage{Name: "Interview", Status: StatusSelected},
		),
		appWithStages("ssc",
			Stage{Name: "Tier 1 Prelims", Status: StatusNotCleared},
			Stage{Name: "Mains", Status: StatusPending},
		),
	}
	archived := []Application{
		appWithStages("bank",
			Stage{Name: "PRELIMINARY", Status: StatusCleared},
			Stage{Name: "Main Exam", Status: StatusNotCleared},
			Stage{Name: "Final Interview", Status: StatusNA},
		),
		appWithStages("psc",
			Stage{Name: "Written", Status: StatusCleared},
			Stage{Name: "Domain Round", Status: StatusCleared},
			Stage{Name: "Interview", Status: StatusNotSelected},
		),
	}

	want := Metrics{TotalApplied: 4, PrelimsCleared: 2, MainsCleared: 1, InterviewsAttended: 2}
	assert.Equal(t, want, GetMetrics(active, archived))
	assert.Equal(t, Metrics{}, GetMetrics(nil, nil))
}

func TestNewStageBoard(t *testing.T) {
	app := sampleApplication() // Prelims cleared, Mains and Interview pending
	board := NewStageBoard(app)

	assert.Equal(t, "app-1", board.ApplicationID)
	assert.Equal(t, Progress{Completed: 1, Total: 3, Percentage: 33}, board.Progress)
	require.Len(t, board.Stages, 3)

	prelims, mains, interview := board.Stages[0], board.Stages[1], board.Stages[2]

	assert.True(t, prelims.Editable)
	assert.Nil(t, prelims.Reason)
	assert.Equal(t, "Cleared", prelims.Label)
	assert.False(t, prelims.Final)

	assert.True(t, mains.Editable)
	assert.Equal(t, 1, mains.Index)

	assert.False(t, interview.Editable)
	assert.True(t, interview.Final)
	require.NotNil(t, interview.Reason)
	assert.Equal(t, ReasonPending, interview.Reason.Kind)
	assert.Equal(t, []Status{StatusPending, StatusSelected, StatusNotSelected}, optionValues(interview.AvailableStatuses))
}

func TestNewStageBoard_LabelFollowsVocabulary(t *testing.T) {
	app := sampleApplication()
	// the mutator does not check vocabularies
	app = UpdateStage(app, 2, StageUpdate{Status: statusPtr(StatusCleared)})
	app = UpdateStage(app, 1, StageUpdate{Status: statusPtr(StatusSelected)})

	board := NewStageBoard(app)
	assert.Equal(t, "Pending", board.Stages[1].Label)
	assert.Equal(t, "Pending", board.Stages[2].Label)
}

func TestSortApplications(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	apps := []Application{
		{ID: "1", Name: "ssc cgl", ExamDate: "2024-09-01", FeeAmount: 100, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "2", Name: "UPSC", ExamDate: "2024-05-26", FeeAmount: 100, CreatedAt: base},
		{ID: "3", Name: "Bank PO", ExamDate: "2024-09-01", FeeAmount: 850, CreatedAt: base.Add(time.Hour)},
	}

	tests := []struct {
		name      string
		orderings []core.Ordering
		want      []string
	}{
		{name: "none keeps order", want: []string{"1", "2", "3"}},
		{name: "name ignores case", orderings: []core.Ordering{{Field: OrderByName, Ascending: true}}, want: []string{"3", "1", "2"}},
		{name: "-created_at", orderings: []core.Ordering{{Field: OrderByCreatedAt}}, want: []string{"1", "3", "2"}},
		{
			name:      "exam_date then -fee_amount",
			orderings: []core.Ordering{{Field: OrderByExamDate, Ascending: true}, {Field: OrderByFeeAmount}},
			want:      []string{"2", "3", "1"},
		},
		{name: "unknown field", orderings: []core.Ordering{{Field: "password", Ascending: true}}, want: []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]Application(nil), apps...)
			SortApplications(got, tt.orderings...)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
