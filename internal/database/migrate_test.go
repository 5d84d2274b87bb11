package database

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestSplitStatements(t *testing.T) {
	script := `-- header
CREATE TABLE a (
    id NUMBER
);

CREATE INDEX idx_a ON a(id);
`
	stmts := splitStatements(script)
	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE a (\n    id NUMBER\n)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx_a ON a(id)", stmts[1])
}

func TestLoadMigrations_Embedded(t *testing.T) {
	migrations, err := LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Equal(t, "000001_create_quizzes", migrations[0].Version)
	assert.Equal(t, "000003_create_curriculum", migrations[2].Version)
	for _, m := range migrations {
		for _, stmt := range m.Statements {
			assert.NotContains(t, stmt, ";")
		}
	}
}

func TestLoadMigrations_IgnoresOtherFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"m/000002_b.up.sql":   {Data: []byte("CREATE TABLE b (id NUMBER);")},
		"m/000001_a.up.sql":   {Data: []byte("CREATE TABLE a (id NUMBER);")},
		"m/000001_a.down.sql": {Data: []byte("DROP TABLE a;")},
		"m/README.md":         {Data: []byte("notes")},
	}
	migrations, err := loadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "000001_a", migrations[0].Version)
	assert.Equal(t, "000002_b", migrations[1].Version)
}

func TestApply_SkipsAppliedVersions(t *testing.T) {
	db, mock := setupTestDB(t)
	migrations := []Migration{
		{Version: "000001_a", Statements: []string{"CREATE TABLE a (id NUMBER)"}},
		{Version: "000002_b", Statements: []string{"CREATE TABLE b (id NUMBER)", "CREATE INDEX idx_b ON b(id)"}},
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_tables`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("000001_a"))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE b`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX idx_b`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations`).WithArgs("000002_b").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := apply(context.Background(), db, migrations)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApply_CreatesTrackingTableAndRollsBackOnFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	migrations := []Migration{{Version: "000001_a", Statements: []string{"CREATE TABLE a (id NUMBER)"}}}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM user_tables`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`CREATE TABLE schema_migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE a`).WillReturnError(errors.New("ORA-00955: name is already used"))
	mock.ExpectRollback()

	n, err := apply(context.Background(), db, migrations)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000001_a")
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
