package datascope

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type row struct {
	ID uuid.UUID
}

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB, DriverName: "postgres"}), &gorm.Config{
		SkipDefaultTransaction: true,
		DryRun:                 true,
	})
	require.NoError(t, err)
	return db
}

func render(t *testing.T, scope access.Scope, resource access.Resource, table string) (string, []any) {
	t.Helper()
	var rows []row
	stmt := dryRunDB(t).Table(table).Scopes(Scope(scope, resource, table)).Find(&rows).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestApply(t *testing.T) {
	branch := uuid.New()

	t.Run("unrestricted adds nothing", func(t *testing.T) {
		sql, vars := render(t, access.Unrestricted(), access.ResourceWarehouse, "warehouses")
		assert.NotContains(t, sql, "WHERE")
		assert.Empty(t, vars)
	})

	t.Run("branch agnostic resource adds nothing for a branch scope", func(t *testing.T) {
		sql, _ := render(t, access.Branch(branch), access.ResourceCustomer, "customers")
		assert.NotContains(t, sql, "WHERE")
	})

	t.Run("empty scope matches no rows", func(t *testing.T) {
		sql, _ := render(t, access.Nothing(), access.ResourceStock, "warehouse_stock")
		assert.Contains(t, sql, "1 = 0")
	})

	t.Run("branch filters by its own id", func(t *testing.T) {
		sql, vars := render(t, access.Branch(branch), access.ResourceBranch, "branches")
		assert.Contains(t, sql, "branches.id = $1")
		assert.Equal(t, []any{branch}, vars)
	})

	t.Run("direct attribution uses branch_id", func(t *testing.T) {
		sql, vars := render(t, access.Branch(branch), access.ResourceInvoice, "invoices")
		assert.Contains(t, sql, "invoices.branch_id = $1")
		assert.Equal(t, []any{branch}, vars)
	})

	t.Run("stock goes through its warehouse", func(t *testing.T) {
		sql, vars := render(t, access.Branch(branch), access.ResourceStock, "warehouse_stock")
		assert.Contains(t, sql, "warehouse_stock.warehouse_id IN (SELECT id FROM warehouses WHERE branch_id = $1)")
		assert.Equal(t, []any{branch}, vars)
	})

	t.Run("transfer matches either warehouse", func(t *testing.T) {
		sql, vars := render(t, access.Branch(branch), access.ResourceTransfer, "warehouse_transfers")
		assert.Contains(t, sql, "warehouse_transfers.from_warehouse_id IN")
		assert.Contains(t, sql, "OR warehouse_transfers.to_warehouse_id IN")
		assert.Equal(t, []any{branch, branch}, vars)
	})
}
