package exam_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/selfcare/core"
	"github.com/trezcool/selfcare/core/exam"
	"github.com/trezcool/selfcare/storage/database/inmem"
	"github.com/trezcool/selfcare/tests"
)

const profile = "student-1"

var errStoreDown = errors.New("store down")

// countingStore counts saves and can be made to fail.
type countingStore struct {
	exam.Store
	saves   map[string]int
	failing bool
}

func (s *countingStore) Load(ctx context.Context, profile, namespace string) ([]exam.Application, error) {
	if s.failing {
		return nil, errStoreDown
	}
	return s.Store.Load(ctx, profile, namespace)
}

func (s *countingStore) Save(ctx context.Context, profile, namespace string, apps []exam.Application) error {
	if s.failing {
		return errStoreDown
	}
	s.saves[namespace]++
	return s.Store.Save(ctx, profile, namespace, apps)
}

func setup() (*exam.Service, *countingStore, *testutil.NotifierMock) {
	store := &countingStore{Store: inmemdb.NewExamStore(inmemdb.Open()), saves: make(map[string]int)}
	notifier := new(testutil.NotifierMock)
	return exam.NewService(store, notifier), store, notifier
}

func TestNewService_NilArgs(t *testing.T) {
	assert.Panics(t, func() { exam.NewService(nil, new(testutil.NotifierMock)) })
	assert.Panics(t, func() { exam.NewService(inmemdb.NewExamStore(inmemdb.Open()), nil) })
}

func TestService_Add(t *testing.T) {
	svc, store, _ := setup()
	ctx := context.Background()

	app, err := svc.Add(ctx, profile, testutil.NewDraft("UPSC CSE", "Prelims", "Final Written", "Interview"))
	require.NoError(t, err)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, exam.FinalPending, app.FinalStatus)
	assert.False(t, app.CreatedAt.IsZero())
	assert.Equal(t, []exam.Stage{
		{Name: "Prelims", Kind: exam.KindIntermediate, Status: exam.StatusPending},
		{Name: "Final Written", Kind: exam.KindFinal, Status: exam.StatusPending},
		{Name: "Interview", Kind: exam.KindFinal, Status: exam.StatusPending},
	}, app.Stages)
	assert.Equal(t, 1, store.saves[exam.NamespaceActive])

	apps, err := svc.List(ctx, profile)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)

	// other profiles do not see it
	apps, err = svc.List(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, apps)

	_, err = svc.Add(ctx, profile, testutil.NewDraft("No stages"))
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "stages", vErr.Fields[0].Field)
}

func TestService_GetUpdate(t *testing.T) {
	svc, store, _ := setup()
	ctx := context.Background()
	app := testutil.CreateApplication(t, svc, profile, "UPSC CSE")

	got, err := svc.Get(ctx, profile, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)

	_, err = svc.Get(ctx, profile, "unknown")
	assert.Equal(t, exam.ErrNotFound, err)

	place := "Mumbai"
	final := exam.FinalSelected
	updated, err := svc.Update(ctx, profile, app.ID, exam.UpdateApplication{Place: &place, FinalStatus: &final})
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.Place)
	assert.Equal(t, exam.FinalSelected, updated.FinalStatus)
	assert.Equal(t, app.Name, updated.Name)
	assert.Equal(t, app.Stages, updated.Stages)

	saves := store.saves[exam.NamespaceActive]
	_, err = svc.Update(ctx, profile, "unknown", exam.UpdateApplication{Place: &place})
	assert.Equal(t, exam.ErrNotFound, err)
	assert.Equal(t, saves, store.saves[exam.NamespaceActive], "nothing saved on unknown id")
}

func TestService_EditStage(t *testing.T) {
	svc, _, notifier := setup()
	ctx := context.Background()
	app := testutil.CreateApplication(t, svc, profile, "UPSC CSE", "Prelims", "Mains", "Interview(Final)")

	cleared, notCleared, selected := exam.StatusCleared, exam.StatusNotCleared, exam.StatusSelected
	score := "98.5"

	// Mains is locked while Prelims is pending
	_, err := svc.EditStage(ctx, profile, app.ID, 1, exam.StageUpdate{Status: &cleared})
	var pErr *exam.PolicyViolationError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, 1, pErr.Index)
	assert.Equal(t, exam.ReasonPending, pErr.Reason.Kind)
	assert.True(t, exam.IsPolicyViolation(err))

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, core.NotificationStageLocked, sent[0].Kind)
	assert.Equal(t, "Stage Not Editable", sent[0].Title)
	assert.Equal(t, pErr.Reason.Message, sent[0].Message)

	// clearing Prelims unlocks Mains
	got, err := svc.EditStage(ctx, profile, app.ID, 0, exam.StageUpdate{Status: &cleared, Score: &score})
	require.NoError(t, err)
	assert.Equal(t, exam.StatusCleared, got.Stages[0].Status)
	assert.Equal(t, "98.5", got.Stages[0].Score)

	_, err = svc.EditStage(ctx, profile, app.ID, 1, exam.StageUpdate{Status: &notCleared})
	require.NoError(t, err)

	// a failed Mains blocks the final stage with a failure reason
	_, err = svc.EditStage(ctx, profile, app.ID, 2, exam.StageUpdate{Status: &selected})
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, exam.ReasonFailed, pErr.Reason.Kind)

	// the vocabulary depends on the stage kind
	_, err = svc.EditStage(ctx, profile, app.ID, 0, exam.StageUpdate{Status: &selected})
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "status", vErr.Fields[0].Field)

	// out of range and unknown ids
	_, err = svc.EditStage(ctx, profile, app.ID, 3, exam.StageUpdate{Status: &cleared})
	assert.Equal(t, exam.ErrStageNotFound, err)
	_, err = svc.EditStage(ctx, profile, app.ID, -1, exam.StageUpdate{Status: &cleared})
	assert.Equal(t, exam.ErrStageNotFound, err)
	_, err = svc.EditStage(ctx, profile, "unknown", 0, exam.StageUpdate{Status: &cleared})
	assert.Equal(t, exam.ErrNotFound, err)

	stored, err := svc.Get(ctx, profile, app.ID)
	require.NoError(t, err)
	assert.Equal(t, exam.StatusNotCleared, stored.Stages[1].Status)
	assert.Equal(t, exam.StatusPending, stored.Stages[2].Status)
}

func TestService_EditStage_NotifiesResult(t *testing.T) {
	svc, _, notifier := setup()
	ctx := context.Background()
	app := testutil.CreateApplication(t, svc, profile, "SSC CGL", "Tier 1", "Tier 2")

	cleared, selected := exam.StatusCleared, exam.StatusSelected
	notes := "waiting for the merit list"

	_, err := svc.EditStage(ctx, profile, app.ID, 0, exam.StageUpdate{Status: &cleared})
	require.NoError(t, err)
	_, err = svc.EditStage(ctx, profile, app.ID, 1, exam.StageUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Empty(t, notifier.Sent(), "no result yet")

	_, err = svc.EditStage(ctx, profile, app.ID, 1, exam.StageUpdate{Status: &selected})
	require.NoError(t, err)

	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, core.NotificationResult, sent[0].Kind)
	assert.Equal(t, "SSC CGL: Selected", sent[0].Title)
	assert.Equal(t, profile, sent[0].Profile)

	// setting the same outcome again is not a new result
	_, err = svc.EditStage(ctx, profile, app.ID, 1, exam.StageUpdate{Status: &selected})
	require.NoError(t, err)
	assert.Len(t, notifier.Sent(), 1)
}

func TestService_ArchiveDelete(t *testing.T) {
	svc, store, _ := setup()
	ctx := context.Background()
	a := testutil.CreateApplication(t, svc, profile, "A")
	b := testutil.CreateApplication(t, svc, profile, "B")

	require.NoError(t, svc.Archive(ctx, profile, a.ID))
	active, err := svc.List(ctx, profile)
	require.NoError(t, err)
	archived, err := svc.Archived(ctx, profile)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Len(t, archived, 1)
	assert.Equal(t, b.ID, active[0].ID)
	assert.Equal(t, a.ID, archived[0].ID)
	assert.True(t, archived[0].IsArchived())

	// archiving again, or an unknown id, changes nothing
	require.NoError(t, svc.Archive(ctx, profile, a.ID))
	require.NoError(t, svc.Archive(ctx, profile, "unknown"))
	history, err := svc.History(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, []string{history[0].ID, history[1].ID})

	// archived applications stay editable
	cleared := exam.StatusCleared
	got, err := svc.EditStage(ctx, profile, a.ID, 0, exam.StageUpdate{Status: &cleared})
	require.NoError(t, err)
	assert.True(t, got.IsArchived())

	metrics, err := svc.Metrics(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, exam.Metrics{TotalApplied: 2, PrelimsCleared: 1}, metrics)

	saves := store.saves[exam.NamespaceArchived]
	require.NoError(t, svc.Delete(ctx, profile, a.ID))
	require.NoError(t, svc.Delete(ctx, profile, b.ID))
	require.NoError(t, svc.Delete(ctx, profile, "unknown"))
	assert.Equal(t, saves+3, store.saves[exam.NamespaceArchived])

	history, err = svc.History(ctx, profile)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_Board(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()
	app := testutil.CreateApplication(t, svc, profile, "UPSC CSE")

	board, err := svc.Board(ctx, profile, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, board.ApplicationID)
	assert.Equal(t, exam.Progress{Total: 3}, board.Progress)
	assert.True(t, board.Stages[0].Editable)
	assert.False(t, board.Stages[1].Editable)

	_, err = svc.Board(ctx, profile, "unknown")
	assert.Equal(t, exam.ErrNotFound, err)
}

func TestService_StoreErrors(t *testing.T) {
	svc, store, _ := setup()
	ctx := context.Background()
	app := testutil.CreateApplication(t, svc, profile, "UPSC CSE")
	store.failing = true

	cleared := exam.StatusCleared
	tests := []struct {
		name string
		call func() error
	}{
		{name: "list", call: func() error { _, err := svc.List(ctx, profile); return err }},
		{name: "add", call: func() error { _, err := svc.Add(ctx, profile, testutil.NewDraft("X", "Only")); return err }},
		{name: "archive", call: func() error { return svc.Archive(ctx, profile, app.ID) }},
		{name: "delete", call: func() error { return svc.Delete(ctx, profile, app.ID) }},
		{name: "edit stage", call: func() error {
			_, err := svc.EditStage(ctx, profile, app.ID, 0, exam.StageUpdate{Status: &cleared})
			return err
		}},
		{name: "metrics", call: func() error { _, err := svc.Metrics(ctx, profile); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); errors.Cause(err) != errStoreDown {
				t.Errorf("%s() error = %v, wantErr %v", tt.name, err, errStoreDown)
			}
		})
	}
}
