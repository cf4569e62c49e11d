package migrations

import (
	"database/sql"
	"testing"

	"portfoliohealth/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The runner reports progress through the shared application logger
var _ func(*sql.DB, utils.Logger) error = RunMigrations

func TestMigrationsRegistry(t *testing.T) {
	require.NotEmpty(t, Migrations)
	for i, m := range Migrations {
		assert.Equal(t, i+1, m.Version, "versions must be sequential from 1")
		assert.NotEmpty(t, m.Description)
		assert.NotNil(t, m.Func)
	}
}
