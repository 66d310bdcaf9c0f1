package database

import (
	"io/fs"
	"strings"
	"testing"

	"tasktracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func migrationNames(t *testing.T, driver string) (ups, downs map[string]bool) {
	t.Helper()
	entries, err := fs.ReadDir(migrationsFS, migrationsDir(driver))
	require.NoError(t, err)

	ups = map[string]bool{}
	downs = map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	return ups, downs
}

func TestMigrations_ArePaired(t *testing.T) {
	for _, driver := range []string{config.DriverPostgres, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ups, downs := migrationNames(t, driver)
			assert.NotEmpty(t, ups)
			assert.Equal(t, ups, downs)
		})
	}
}

func TestMigrations_SameVersionsForEveryDriver(t *testing.T) {
	pg, _ := migrationNames(t, config.DriverPostgres)
	lite, _ := migrationNames(t, config.DriverSQLite)
	assert.Equal(t, pg, lite)
}

func TestMigrations_DeclareConstraints(t *testing.T) {
	read := func(driver, name string) string {
		b, err := fs.ReadFile(migrationsFS, migrationsDir(driver)+"/"+name)
		require.NoError(t, err)
		return string(b)
	}

	users := read(config.DriverPostgres, "000001_create_users.up.sql")
	assert.Contains(t, users, "username        VARCHAR(150) NOT NULL UNIQUE")

	profiles := read(config.DriverPostgres, "000002_create_user_profiles.up.sql")
	assert.Contains(t, profiles, "user_id         UUID NOT NULL UNIQUE REFERENCES users (id)")

	tasks := read(config.DriverPostgres, "000003_create_tasks.up.sql")
	assert.Contains(t, tasks, "user_id      UUID NOT NULL REFERENCES users (id)")
	assert.Contains(t, tasks, "CHECK (priority IN ('low', 'medium', 'high'))")

	liteTasks := read(config.DriverSQLite, "000003_create_tasks.up.sql")
	assert.Contains(t, liteTasks, "CHECK (status IN ('open', 'in_progress', 'done'))")
	assert.Contains(t, liteTasks, "completed_at DATETIME")
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"}, zap.NewNop())
	assert.EqualError(t, err, `unsupported DB_DRIVER "oracle"`)
}

func TestMigrate_UnsupportedDriver(t *testing.T) {
	err := Migrate(&config.Config{DBDriver: "oracle"}, zap.NewNop())
	assert.EqualError(t, err, `unsupported DB_DRIVER "oracle"`)
}
