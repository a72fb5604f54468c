package schema

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresListTables(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+table_name\s+FROM\s+information_schema\.tables\s+WHERE\s+table_schema\s*=\s*'public'\s+ORDER\s+BY\s+table_name\s*$`).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("accounts").AddRow("goose_db_version"))

	tables, err := NewPostgresRepository(db).ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"accounts", "goose_db_version"}, tables)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLListTables_Empty(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`^SHOW TABLES$`).WillReturnRows(sqlmock.NewRows([]string{"Tables_in_mediaxis"}))

	tables, err := NewMySQLRepository(db).ListTables(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tables)
	assert.Empty(t, tables)
}

func TestListTables_DBError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`^SHOW TABLES$`).WillReturnError(errors.New("conn reset"))

	_, err = NewMySQLRepository(db).ListTables(context.Background())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*conn reset`), err.Error())
}

func TestStaticRepository_ReturnsCopy(t *testing.T) {
	r := &StaticRepository{Tables: []string{"accounts"}}

	got, err := r.ListTables(context.Background())
	require.NoError(t, err)
	got[0] = "mutated"

	again, _ := r.ListTables(context.Background())
	assert.Equal(t, []string{"accounts"}, again)
}
