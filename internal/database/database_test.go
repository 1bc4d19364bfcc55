package database

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceDSN(t *testing.T) {
	tests := []struct {
		name       string
		dsn        string
		wantMaster string
		wantName   string
		wantOK     bool
	}{
		{
			name:       "url",
			dsn:        "postgres://u:p@localhost:5432/aromance?sslmode=disable",
			wantMaster: "postgres://u:p@localhost:5432/postgres?sslmode=disable",
			wantName:   "aromance",
			wantOK:     true,
		},
		{
			name:       "postgresql scheme",
			dsn:        "postgresql://localhost/scents",
			wantMaster: "postgresql://localhost/postgres",
			wantName:   "scents",
			wantOK:     true,
		},
		{name: "keyword dsn", dsn: "host=localhost dbname=aromance"},
		{name: "no database", dsn: "postgres://localhost:5432"},
		{name: "maintenance database", dsn: "postgres://localhost/postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			master, name, ok, err := maintenanceDSN(tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMaster, master)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestConnect(t *testing.T) {
	dsn := os.Getenv("AROMANCE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("AROMANCE_TEST_DATABASE_URL not set")
	}

	db, err := Connect(context.Background(), dsn, false)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("products"))
	assert.True(t, db.Migrator().HasTable("sessions"))
}
