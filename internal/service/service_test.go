package service

import (
	"path/filepath"
	"testing"

	"bill_tracker/internal/config"
	"bill_tracker/internal/repository"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := config.OpenSQLite(filepath.Join(t.TempDir(), "bills.db"))
	require.NoError(t, err)
	store := repository.NewGormStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
