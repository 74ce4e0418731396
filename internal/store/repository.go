package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user. Callers must not distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// Scope narrows or reorders a query, e.g. a date-range filter.
type Scope func(*gorm.DB) *gorm.DB

// Repository is an ownership-scoped data access layer shared by all
// resource types. Every query is filtered by the owning user id.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// List returns the user's records, newest-created-first. Scopes are
// applied before the default ordering so a scope's ORDER BY takes
// precedence.
func (r *Repository[T]) List(userID uint, scopes ...Scope) ([]T, error) {
	q := r.db.Where("user_id = ?", userID)
	for _, s := range scopes {
		q = s(q)
	}

	records := make([]T, 0)
	if err := q.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Create inserts the record. The caller sets UserID beforehand.
func (r *Repository[T]) Create(record *T) error {
	return r.db.Create(record).Error
}

// Get fetches one record by id, scoped to the owning user.
func (r *Repository[T]) Get(userID, id uint) (*T, error) {
	var record T
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Save persists all fields of a record previously fetched with Get.
// Concurrent saves of the same record are last-write-wins.
func (r *Repository[T]) Save(record *T) error {
	return r.db.Save(record).Error
}

// Delete removes one record by id, scoped to the owning user.
func (r *Repository[T]) Delete(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
