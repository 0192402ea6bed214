package migrations_test

import (
	"io"
	"io/fs"
	"testing"

	"github.com/GoArmGo/EmployeeApp/internal/database/migrations"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsEmployeesTable(t *testing.T) {
	raw, err := fs.ReadFile(migrations.FS, "000001_create_employees_table.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "CREATE TABLE IF NOT EXISTS employees")
}

func TestFS_OpensAsMigrationSource(t *testing.T) {
	src, err := iofs.New(migrations.FS, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	r, identifier, err := src.ReadUp(first)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, "create_employees_table", identifier)

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(body), "employees")
}
