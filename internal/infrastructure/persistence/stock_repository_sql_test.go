package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The guard must live in the UPDATE itself. A read followed by a write would
// let two concurrent decrements both pass the check.
func TestGormStockRepository_AdjustQuantity_SQL(t *testing.T) {
	id := uuid.New()
	update := regexp.QuoteMeta(`UPDATE "warehouse_stock" SET "quantity"=quantity + $1,"updated_at"=$2,"version"=version + 1 WHERE "warehouse_stock"."id" = $3 AND warehouse_stock.quantity + $4 >= 0`)

	t.Run("guarded update with no match reports insufficient stock", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		mock.MatchExpectationsInOrder(false)

		mock.ExpectExec(update).
			WithArgs(int64(-5), sqlmock.AnyArg(), id, int64(-5)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "warehouse_stock" WHERE "warehouse_stock"."id" = $1`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "warehouse_id", "product_id", "metal", "quantity", "version", "created_at", "updated_at"}).
				AddRow(id.String(), uuid.NewString(), uuid.NewString(), "gold", int64(2), 1, time.Now(), time.Now()))
		mock.ExpectQuery(`SELECT \* FROM "warehouses"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewGormStockRepository(db.DB).AdjustQuantity(context.Background(), access.Unrestricted(), id, -5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
		assert.Contains(t, err.Error(), "available 2")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match and no row is not found", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "warehouse_stock"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := NewGormStockRepository(db.DB).AdjustQuantity(context.Background(), access.Unrestricted(), id, -1)
		assert.True(t, shared.IsKind(err, shared.KindNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check constraint from the database is a validation error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectExec(update).WillReturnError(&pgconn.PgError{Code: "23514", Message: "warehouse_stock_quantity_check"})

		_, err := NewGormStockRepository(db.DB).AdjustQuantity(context.Background(), access.Unrestricted(), id, -1)
		assert.True(t, shared.IsKind(err, shared.KindValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRepository_SetQuantity_SQL(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	id := uuid.New()

	mock.ExpectExec(`UPDATE "warehouse_stock" SET "quantity"=\$1,.* WHERE "warehouse_stock"\."id" = \$\d+ AND "warehouse_stock"\."deleted_at" IS NULL`).
		WithArgs(int64(4), sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := NewGormStockRepository(db.DB).SetQuantity(context.Background(), access.Unrestricted(), id, 4)
	assert.True(t, shared.IsKind(err, shared.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransferRepository_Resolve_SQL(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	mock.MatchExpectationsInOrder(false)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "warehouse_transfers" SET "action_by"=$1,"action_date"=$2,"status"=$3,"updated_at"=$4 WHERE "warehouse_transfers"."id" = $5 AND warehouse_transfers.status = $6`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), inventory.TransferApproved, sqlmock.AnyArg(), id, inventory.TransferPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "warehouse_transfers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_name", "from_warehouse_id", "to_warehouse_id", "quantity", "status", "action_date", "created_at", "updated_at"}).
			AddRow(id.String(), "Ring", uuid.NewString(), uuid.NewString(), int64(1), "Approved", time.Now(), time.Now(), time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "warehouses"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "warehouses"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewGormTransferRepository(db.DB).Resolve(context.Background(), access.Unrestricted(), id, inventory.TransferApproved, uuid.New(), time.Now())
	assert.True(t, errors.Is(err, shared.ErrTransferResolved))
}
