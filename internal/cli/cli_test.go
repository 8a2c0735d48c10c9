package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/infrastructure/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "estoquectl", cmd.Use)

	for _, name := range []string{"migrate", "verify", "create-user"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	driver := cmd.PersistentFlags().Lookup("driver")
	require.NotNil(t, driver)
	assert.Equal(t, "", driver.DefValue)
}

func TestDriverInvalido(t *testing.T) {
	_, err := run(t, "migrate", "--driver", "mongo")
	assert.Error(t, err)
}

func TestMigrateYCreateUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, "migrate", "--driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "esquema aplicado (sqlite)")

	out, err = run(t, "create-user", "--driver", "sqlite", "--sqlite-path", path,
		"--name", "Ana", "--email", "Ana@Example.com", "--password", "secreto1")
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")

	_, err = run(t, "create-user", "--driver", "sqlite", "--sqlite-path", path,
		"--name", "Ana", "--email", "ana@example.com", "--password", "secreto1")
	assert.Error(t, err, "email duplicado")
}

func TestVerify_LedgerConsistenteEInconsistente(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.db")

	_, err := run(t, "create-user", "--driver", "sqlite", "--sqlite-path", path,
		"--name", "Ana", "--email", "ana@example.com", "--password", "secreto1")
	require.NoError(t, err)

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	_, err = store.DB().Exec(`INSERT INTO products (name, description, value, minimum_value, quantity, created_at, updated_at)
		VALUES ('Caneta', 'azul', '1.5', 0, 3, '2024-05-01T10:00:00Z', '2024-05-01T10:00:00Z')`)
	require.NoError(t, err)
	_, err = store.DB().Exec(`INSERT INTO movements (transaction_id, product_id, user_id, type, quantity, balance, date)
		VALUES ('tx-1', 1, 1, 'entrada', 3, 3, '2024-05-01T10:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := run(t, "verify", "--driver", "sqlite", "--sqlite-path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Caneta")
	assert.Contains(t, out, "1 productos verificados, 0 con inconsistencias")

	store, err = sqlite.Open(path)
	require.NoError(t, err)
	_, err = store.DB().Exec(`UPDATE products SET quantity = 9 WHERE id = 1`)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err = run(t, "verify", "--driver", "sqlite", "--sqlite-path", path, "--product", "1")
	require.ErrorIs(t, err, ErrInconsistentLedger)
	assert.Contains(t, out, "ERROR")
}
