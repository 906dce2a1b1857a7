package persistence

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// filterUUID reads an id from filter.Filters. Strings are parsed; invalid
// values are ignored.
func filterUUID(filter shared.Filter, key string) (uuid.UUID, bool) {
	switch v := filter.Filters[key].(type) {
	case uuid.UUID:
		return v, v != uuid.Nil
	case *uuid.UUID:
		if v == nil {
			return uuid.Nil, false
		}
		return *v, *v != uuid.Nil
	case string:
		id, err := uuid.Parse(v)
		return id, err == nil
	}
	return uuid.Nil, false
}

func filterString(filter shared.Filter, key string) (string, bool) {
	switch v := filter.Filters[key].(type) {
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	case interface{ String() string }:
		s := v.String()
		return s, s != ""
	}
	return "", false
}

func filterTime(filter shared.Filter, key string) (time.Time, bool) {
	switch v := filter.Filters[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	}
	return time.Time{}, false
}

func filterBool(filter shared.Filter, key string) (bool, bool) {
	v, ok := filter.Filters[key].(bool)
	return v, ok
}

// searchLike matches any of columns case-insensitively. LOWER/LIKE is used
// instead of ILIKE so the same query runs on SQLite in tests.
func searchLike(q *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return q
	}
	pattern := "%" + strings.ToLower(escapeLike(search)) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		conds[i] = "LOWER(" + c + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// unscopedPreload preloads an association including soft-deleted rows, so
// projections of deleted parents still resolve.
func unscopedPreload(names ...string) visibility {
	return func(db *gorm.DB) *gorm.DB {
		for _, n := range names {
			db = db.Preload(n, func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
		}
		return db
	}
}
