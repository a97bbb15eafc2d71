package kv

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/yuuzu/spenderman/internal/test_utils"
)

var pgContainer *postgres.PostgresContainer
var openDb func() (*pgxpool.Pool, error)

func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() {
		var err error
		pgContainer, openDb, err = test_utils.TestWithDB()
		if err != nil {
			log.Warnf("postgres tests disabled: %v", err)
			openDb = nil
		}
	}
	code := m.Run()
	if pgContainer != nil {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			log.Errorf("failed to terminate container: %s", err)
		}
	}
	os.Exit(code)
}

func setupPostgresStore(t *testing.T) Store {
	t.Helper()
	if openDb == nil {
		t.Skip("postgres container not available")
	}
	ctx := context.Background()
	pool, err := openDb()
	require.NoError(t, err)
	t.Cleanup(func() {
		pool.Close()
		require.NoError(t, pgContainer.Restore(ctx))
	})
	return NewPostgresStore(pool)
}

func TestPostgresStore(t *testing.T) {
	runStoreContract(t, setupPostgresStore)
}
