package inmemdb

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/selfcare/core/exam"
)

type examStore struct {
	db *collectionTable
}

var _ exam.Store = (*examStore)(nil) // interface compliance check

func NewExamStore(db *DB) *examStore {
	return &examStore{db: db.collection}
}

func (s *examStore) Load(ctx context.Context, profile, namespace string) ([]exam.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.db.mutex.RLock()
	payload, ok := s.db.t[collectionKey{profile, namespace}]
	s.db.mutex.RUnlock()

	apps := make([]exam.Application, 0)
	if !ok {
		return apps, nil
	}
	if err := json.Unmarshal(payload, &apps); err != nil {
		return nil, errors.Wrap(err, "decoding collection")
	}
	return apps, nil
}

func (s *examStore) Save(ctx context.Context, profile, namespace string, apps []exam.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if apps == nil {
		apps = []exam.Application{}
	}

	payload, err := json.Marshal(apps)
	if err != nil {
		return errors.Wrap(err, "encoding collection")
	}

	s.db.mutex.Lock()
	defer s.db.mutex.Unlock()
	s.db.t[collectionKey{profile, namespace}] = payload
	return nil
}

