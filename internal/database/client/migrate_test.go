package client

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErrs []error
	ups    int
	forced []int
}

func (f *fakeMigrator) Up() error {
	f.ups++
	if len(f.upErrs) == 0 {
		return nil
	}
	err := f.upErrs[0]
	f.upErrs = f.upErrs[1:]
	return err
}

func (f *fakeMigrator) Force(version int) error {
	f.forced = append(f.forced, version)
	return nil
}

func TestMigrateUp(t *testing.T) {
	t.Run("dirty version is reset and up is retried", func(t *testing.T) {
		m := &fakeMigrator{upErrs: []error{migrate.ErrDirty{Version: 1}, nil}}

		require.NoError(t, migrateUp(m))
		assert.Equal(t, 2, m.ups)
		assert.Equal(t, []int{database.NilVersion}, m.forced)
	})

	t.Run("no change is not an error", func(t *testing.T) {
		m := &fakeMigrator{upErrs: []error{migrate.ErrNoChange}}

		require.NoError(t, migrateUp(m))
		assert.Empty(t, m.forced)
	})

	t.Run("other failures are returned", func(t *testing.T) {
		boom := errors.New("syntax error")
		m := &fakeMigrator{upErrs: []error{boom}}

		err := migrateUp(m)
		require.ErrorIs(t, err, boom)
		assert.Empty(t, m.forced)
	})

	t.Run("failure after reset is returned", func(t *testing.T) {
		boom := errors.New("connection reset")
		m := &fakeMigrator{upErrs: []error{migrate.ErrDirty{Version: 1}, boom}}

		require.ErrorIs(t, migrateUp(m), boom)
	})
}
