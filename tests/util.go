package testutil

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/selfcare/core"
	"github.com/trezcool/selfcare/core/exam"
	"github.com/trezcool/selfcare/storage/database"
)

// NotifierMock records every notification it receives.
type NotifierMock struct {
	mu   sync.Mutex
	sent []core.Notification
}

func (n *NotifierMock) Notify(notif core.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notif)
}

func (n *NotifierMock) Sent() []core.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]core.Notification(nil), n.sent...)
}

func (n *NotifierMock) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}

// NewDraft returns a valid exam draft with the given stages.
func NewDraft(name string, stages ...string) exam.NewApplication {
	return exam.NewApplication{
		Name:          name,
		FeeAmount:     100,
		ExamDate:      "2024-05-26",
		Place:         "Delhi",
		PaymentStatus: exam.PaymentPaid,
		FinalStatus:   exam.FinalPending,
		Stages:        stages,
	}
}

func CreateApplication(t *testing.T, svc exam.ServiceInterface, profile, name string, stages ...string) exam.Application {
	t.Helper()
	if len(stages) == 0 {
		stages = []string{"Prelims", "Mains", "Interview"}
	}
	app, err := svc.Add(context.Background(), profile, NewDraft(name, stages...))
	if err != nil {
		t.Fatalf("createApplication() failed: %v", err)
	}
	return app
}

// PrepareDB opens, migrates and empties the test database.
// Tests are skipped unless TEST_DATABASE_HOST is set.
func PrepareDB(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("TEST_DATABASE_HOST") == "" {
		t.Skip("TEST_DATABASE_HOST is not set")
	}

	_ = os.Setenv("ENV", "test")
	conf := core.NewConfig()
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}
	if err = database.Migrate(db); err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}
	if _, err = db.Exec("TRUNCATE profile_collection"); err != nil {
		t.Fatalf("prepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CheckStore checks the behaviour every exam.Store must have.
func CheckStore(t *testing.T, store exam.Store) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("load before any save", func(t *testing.T) {
		apps, err := store.Load(ctx, "nobody", exam.NamespaceActive)
		require.NoError(t, err)
		assert.NotNil(t, apps)
		assert.Empty(t, apps)
	})

	t.Run("save then load", func(t *testing.T) {
		app := exam.Application{
			ID:            "app-1",
			Name:          "UPSC CSE",
			FeeAmount:     100,
			ExamDate:      "2024-05-26",
			Place:         "Delhi",
			PaymentStatus: exam.PaymentPaid,
			FinalStatus:   exam.FinalPending,
			Stages:        exam.NewStages("Prelims", "Mains", "Interview"),
			CreatedAt:     created,
			UpdatedAt:     created,
		}
		require.NoError(t, store.Save(ctx, "student", exam.NamespaceActive, []exam.Application{app}))

		got, err := store.Load(ctx, "student", exam.NamespaceActive)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, app.ID, got[0].ID)
		assert.Equal(t, app.Stages, got[0].Stages)
		assert.True(t, app.CreatedAt.Equal(got[0].CreatedAt))

		// namespaces and profiles are isolated
		other, err := store.Load(ctx, "student", exam.NamespaceArchived)
		require.NoError(t, err)
		assert.Empty(t, other)
		other, err = store.Load(ctx, "someone-else", exam.NamespaceActive)
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("save replaces the collection", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "student", exam.NamespaceActive, nil))
		got, err := store.Load(ctx, "student", exam.NamespaceActive)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("loaded values are copies", func(t *testing.T) {
		app := exam.Application{ID: "app-2", Stages: exam.NewStages("Only Stage")}
		require.NoError(t, store.Save(ctx, "student", exam.NamespaceArchived, []exam.Application{app}))

		got, err := store.Load(ctx, "student", exam.NamespaceArchived)
		require.NoError(t, err)
		got[0].Stages[0].Status = exam.StatusSelected

		again, err := store.Load(ctx, "student", exam.NamespaceArchived)
		require.NoError(t, err)
		assert.Equal(t, exam.StatusPending, again[0].Stages[0].Status)
	})
}
