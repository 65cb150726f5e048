package mariadb

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/c14220110/poliklinik-lab/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRunsEveryStatement(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	for range schema {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), conn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsOnError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS Diagnostic_Test").WillReturnError(errors.New("access denied"))

	err = Migrate(context.Background(), conn)
	assert.ErrorContains(t, err, "migrate statement 0")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBUser: "klinik", DBPassword: "pw", DBHost: "db", DBPort: "3306", DBName: "lab"}

	assert.Equal(t, "klinik:pw@tcp(db:3306)/lab?parseTime=true&loc=Asia%2FJakarta", DSN(cfg))
}
