package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/selfcare/core/exam"
)

const (
	selectCollectionSQL = `SELECT profile, namespace, payload, updated_at FROM profile_collection
WHERE profile = $1 AND namespace = $2`

	upsertCollectionSQL = `INSERT INTO profile_collection (profile, namespace, payload, updated_at)
VALUES (:profile, :namespace, :payload, :updated_at)
ON CONFLICT (profile, namespace) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
)

type collectionRow struct {
	Profile   string    `db:"profile"`
	Namespace string    `db:"namespace"`
	Payload   null.JSON `db:"payload"`
	UpdatedAt null.Time `db:"updated_at"`
}

type examStore struct {
	db *sqlx.DB
}

var _ exam.Store = (*examStore)(nil) // interface compliance check

func NewExamStore(db *sql.DB) *examStore {
	return &examStore{db: sqlx.NewDb(db, "postgres")}
}

func (s *examStore) Load(ctx context.Context, profile, namespace string) ([]exam.Application, error) {
	var row collectionRow
	apps := make([]exam.Application, 0)

	if err := s.db.GetContext(ctx, &row, selectCollectionSQL, profile, namespace); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apps, nil
		}
		return nil, errors.Wrap(err, "selecting collection")
	}
	if !row.Payload.Valid {
		return apps, nil
	}
	if err := row.Payload.Unmarshal(&apps); err != nil {
		return nil, errors.Wrap(err, "decoding collection")
	}
	return apps, nil
}

func (s *examStore) Save(ctx context.Context, profile, namespace string, apps []exam.Application) error {
	if apps == nil {
		apps = []exam.Application{}
	}
	payload, err := json.Marshal(apps)
	if err != nil {
		return errors.Wrap(err, "encoding collection")
	}

	row := collectionRow{
		Profile:   profile,
		Namespace: namespace,
		Payload:   null.JSONFrom(payload),
		UpdatedAt: null.TimeFrom(exam.NowFunc()),
	}
	if _, err := s.db.NamedExecContext(ctx, upsertCollectionSQL, row); err != nil {
		return errors.Wrap(err, "upserting collection")
	}
	return nil
}
