// Package datascope renders branch scopes as GORM predicates.
//
// access.Policy decides which branch a caller may see; this package knows
// how each resource reaches its branch in SQL:
//   - branch: the row's own id
//   - warehouse, seller, user, invoice: the branch_id column
//   - stock: warehouse_id of a warehouse in the branch
//   - transfer: either warehouse in the branch
//   - vendor, customer, product: no restriction
//
// Usage:
//
//	db.Scopes(datascope.Scope(scope, access.ResourceStock, "warehouse_stock")).Find(&rows)
package datascope

import (
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"gorm.io/gorm"
)

const warehousesInBranch = "(SELECT id FROM warehouses WHERE branch_id = ?)"

// Apply restricts db to the rows of resource visible within scope. table is
// the name under which the resource's table appears in the query, used to
// qualify columns when the query joins other tables.
func Apply(db *gorm.DB, scope access.Scope, resource access.Resource, table string) *gorm.DB {
	attribution := access.AttributionOf(resource)
	if scope.IsUnrestricted() || attribution == access.BranchAgnostic {
		return db
	}
	branchID, ok := scope.BranchID()
	if !ok {
		return db.Where("1 = 0")
	}
	return applyBranch(db, attribution, column(table), branchID)
}

func applyBranch(db *gorm.DB, attribution access.BranchAttribution, col func(string) string, branchID uuid.UUID) *gorm.DB {
	switch attribution {
	case access.BranchIsSelf:
		return db.Where(col("id")+" = ?", branchID)
	case access.BranchDirect:
		return db.Where(col("branch_id")+" = ?", branchID)
	case access.BranchViaWarehouse:
		return db.Where(col("warehouse_id")+" IN "+warehousesInBranch, branchID)
	case access.BranchViaEitherWarehouse:
		return db.Where(
			"("+col("from_warehouse_id")+" IN "+warehousesInBranch+" OR "+col("to_warehouse_id")+" IN "+warehousesInBranch+")",
			branchID, branchID,
		)
	default:
		// Unknown attribution
		return db.Where("1 = 0")
	}
}

// Scope returns Apply as a GORM scope function
func Scope(scope access.Scope, resource access.Resource, table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return Apply(db, scope, resource, table)
	}
}

func column(table string) func(string) string {
	return func(name string) string {
		if table == "" {
			return name
		}
		return table + "." + name
	}
}
