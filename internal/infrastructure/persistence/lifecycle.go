package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// visibility narrows a query to the rows a caller may see
type visibility func(*gorm.DB) *gorm.DB

func idEquals(id uuid.UUID) clause.Expression {
	return clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}, Value: id}
}

// ensureVisible reports NotFound unless a row with id, deleted or not,
// exists within visible.
func ensureVisible[M any](ctx context.Context, db *gorm.DB, visible visibility, id uuid.UUID, entity string) error {
	var count int64
	err := db.WithContext(ctx).Unscoped().Model(new(M)).Scopes(visible).Where(idEquals(id)).Count(&count).Error
	if err != nil {
		return translateError(err, entity)
	}
	if count == 0 {
		return shared.NewNotFoundError(entity)
	}
	return nil
}

// softDelete stamps deleted_at. An already deleted row keeps its first
// timestamp and the call succeeds.
func softDelete[M any](ctx context.Context, db *gorm.DB, visible visibility, id uuid.UUID, entity string) error {
	if err := ensureVisible[M](ctx, db, visible, id, entity); err != nil {
		return err
	}
	// GORM's soft delete only matches rows whose deleted_at is NULL
	err := db.WithContext(ctx).Where(idEquals(id)).Delete(new(M)).Error
	return translateError(err, entity)
}

// restoreRow clears deleted_at. Restoring an active row changes nothing.
func restoreRow[M any](ctx context.Context, db *gorm.DB, visible visibility, id uuid.UUID, entity string) error {
	if err := ensureVisible[M](ctx, db, visible, id, entity); err != nil {
		return err
	}
	err := db.WithContext(ctx).Unscoped().Model(new(M)).
		Where(idEquals(id)).
		Where("deleted_at IS NOT NULL").
		Updates(map[string]any{"deleted_at": nil, "updated_at": time.Now()}).Error
	return translateError(err, entity)
}

// hardDelete removes the row permanently. Rows still referenced elsewhere
// yield Conflict.
func hardDelete[M any](ctx context.Context, db *gorm.DB, visible visibility, id uuid.UUID, entity string) error {
	if err := ensureVisible[M](ctx, db, visible, id, entity); err != nil {
		return err
	}
	err := db.WithContext(ctx).Unscoped().Where(idEquals(id)).Delete(new(M)).Error
	return translateDeleteError(err, entity)
}

// findOne loads a single visible row, optionally including deleted ones
func findOne[M any](ctx context.Context, db *gorm.DB, visible visibility, id uuid.UUID, includeDeleted bool, entity string) (*M, error) {
	q := db.WithContext(ctx).Scopes(visible)
	if includeDeleted {
		q = q.Unscoped()
	}
	var m M
	if err := q.Where(idEquals(id)).Take(&m).Error; err != nil {
		return nil, translateError(err, entity)
	}
	return &m, nil
}

// paginate applies include-deleted, ordering and paging to q and counts the
// total before paging. load adds preloads to the page query only.
func paginate[M any](q *gorm.DB, filter shared.Filter, sort sortColumns, load visibility, entity string) ([]M, int64, error) {
	filter = filter.Normalize()
	if filter.IncludeDeleted {
		q = q.Unscoped()
	}
	q = q.Model(new(M)).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translateError(err, entity)
	}

	page := q.Order(sort.orderBy(filter)).Offset(filter.Offset()).Limit(filter.PageSize)
	if load != nil {
		page = page.Scopes(load)
	}

	var rows []M
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, entity)
	}
	return rows, total, nil
}
