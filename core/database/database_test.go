package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteMemory(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NotNil(t, db)

	// Sanity: the connection is usable.
	var one int
	err = db.Raw("SELECT 1").Scan(&one).Error
	assert.NoError(t, err)
	assert.Equal(t, 1, one)
}

func TestConnectMySQLUnreachable(t *testing.T) {
	// Port 1 is never a MySQL server; the ping must fail fast.
	cfg := Config{
		Driver:         "mysql",
		Host:           "127.0.0.1",
		Port:           1,
		User:           "root",
		Name:           "festivals",
		TimeoutSeconds: 1,
	}
	_, err := Connect(cfg)
	assert.Error(t, err)
}
