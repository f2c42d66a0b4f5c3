package database

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// FindFirst returns the first T matching query. A missing row is reported as
// found == false with a nil error.
func FindFirst[T any](ctx context.Context, db *gorm.DB, query interface{}, args ...interface{}) (*T, bool, error) {
	var out T
	err := db.WithContext(ctx).Where(query, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &out, true, nil
}

// FindAll returns every T ordered by order. It never returns a nil slice.
func FindAll[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	out := make([]T, 0)
	if err := db.WithContext(ctx).Order(order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteWhere deletes records of type T matching query and reports how many went.
func DeleteWhere[T any](ctx context.Context, db *gorm.DB, query interface{}, args ...interface{}) (int64, error) {
	var zero T
	res := db.WithContext(ctx).Where(query, args...).Delete(&zero)
	return res.RowsAffected, res.Error
}

// WithTx runs fn within a transaction on db.
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// LikeEscape is the escape character ContainsPattern uses. Queries must
// declare it with ESCAPE '!'.
const LikeEscape = "!"

var likeEscaper = strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, "%", LikeEscape+"%", "_", LikeEscape+"_")

// ContainsPattern builds a LIKE pattern matching s anywhere, with wildcards in s escaped.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
