package boiledrepos_test

import (
	"testing"

	"github.com/trezcool/selfcare/storage/database/sqlboiler"
	"github.com/trezcool/selfcare/tests"
)

func TestExamStore(t *testing.T) {
	db := testutil.PrepareDB(t)
	testutil.CheckStore(t, boiledrepos.NewExamStore(db))
}
