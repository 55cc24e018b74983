package boiledrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/friendsofgo/errors"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/boil"
	"github.com/volatiletech/sqlboiler/v4/queries"

	"github.com/trezcool/selfcare/core"
	"github.com/trezcool/selfcare/core/exam"
)

const (
	selectCollectionSQL = `SELECT "profile", "namespace", "payload", "updated_at" FROM "profile_collection"
WHERE "profile" = $1 AND "namespace" = $2`

	upsertCollectionSQL = `INSERT INTO "profile_collection" ("profile", "namespace", "payload", "updated_at")
VALUES ($1, $2, $3, $4)
ON CONFLICT ("profile", "namespace") DO UPDATE SET "payload" = EXCLUDED."payload", "updated_at" = EXCLUDED."updated_at"`
)

type profileCollection struct {
	Profile   string    `boil:"profile"`
	Namespace string    `boil:"namespace"`
	Payload   null.JSON `boil:"payload"`
	UpdatedAt null.Time `boil:"updated_at"`
}

type examStore struct {
	exec boil.ContextExecutor
}

var _ exam.Store = (*examStore)(nil) // interface compliance check

func NewExamStore(exec core.DBExecutor) *examStore {
	return &examStore{exec: exec}
}

func (s *examStore) Load(ctx context.Context, profile, namespace string) ([]exam.Application, error) {
	var coll profileCollection
	apps := make([]exam.Application, 0)

	err := queries.Raw(selectCollectionSQL, profile, namespace).Bind(ctx, s.exec, &coll)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apps, nil
		}
		return nil, errors.Wrap(err, "sqlboiler: selecting collection")
	}
	if !coll.Payload.Valid {
		return apps, nil
	}
	if err := coll.Payload.Unmarshal(&apps); err != nil {
		return nil, errors.Wrap(err, "sqlboiler: decoding collection")
	}
	return apps, nil
}

func (s *examStore) Save(ctx context.Context, profile, namespace string, apps []exam.Application) error {
	if apps == nil {
		apps = []exam.Application{}
	}
	payload, err := json.Marshal(apps)
	if err != nil {
		return errors.Wrap(err, "sqlboiler: encoding collection")
	}

	coll := profileCollection{
		Profile:   profile,
		Namespace: namespace,
		Payload:   null.JSONFrom(payload),
		UpdatedAt: null.TimeFrom(exam.NowFunc()),
	}
	if boil.DebugMode {
		_, _ = boil.DebugWriter.Write([]byte(upsertCollectionSQL + "\n"))
	}
	_, err = s.exec.ExecContext(ctx, upsertCollectionSQL, coll.Profile, coll.Namespace, coll.Payload, coll.UpdatedAt)
	if err != nil {
		return errors.Wrap(err, "sqlboiler: upserting collection")
	}
	return nil
}
