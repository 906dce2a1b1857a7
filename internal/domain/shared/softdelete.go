package shared

import "time"

// SoftDelete is the composable deletion marker carried by soft-deletable entities.
type SoftDelete struct {
	DeletedAt *time.Time
}

// DeletedTimestamp returns the deletion time, nil while active
func (s *SoftDelete) DeletedTimestamp() *time.Time {
	return s.DeletedAt
}

// SetDeletedTimestamp overwrites the deletion time
func (s *SoftDelete) SetDeletedTimestamp(t *time.Time) {
	s.DeletedAt = t
}

// SoftDeletable is any record with a deletion timestamp.
type SoftDeletable interface {
	DeletedTimestamp() *time.Time
	SetDeletedTimestamp(t *time.Time)
}

// IsDeleted reports whether the record is soft-deleted
func IsDeleted(r SoftDeletable) bool {
	return r.DeletedTimestamp() != nil
}

// MarkDeleted stamps the record as deleted at now. Deleting an already
// deleted record keeps the first timestamp and reports false.
func MarkDeleted(r SoftDeletable, now time.Time) bool {
	if IsDeleted(r) {
		return false
	}
	t := now
	r.SetDeletedTimestamp(&t)
	return true
}

// Restore clears the deletion timestamp. Restoring an active record reports false.
func Restore(r SoftDeletable) bool {
	if !IsDeleted(r) {
		return false
	}
	r.SetDeletedTimestamp(nil)
	return true
}
