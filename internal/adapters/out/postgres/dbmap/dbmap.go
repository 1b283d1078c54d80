// Package dbmap holds the conversions every GORM repository needs between
// kernel values and column types.
package dbmap

import (
	"errors"
	"time"

	"donations/internal/core/domain/model/kernel"
	"donations/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tracker receives every aggregate a repository writes.
type Tracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// ID converts a uuid column into a kernel UUID.
func ID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

// OptionalID is ID for nullable columns.
func OptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := ID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// OptionalRaw converts an optional kernel UUID into a nullable column value.
func OptionalRaw(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// OptionalTime normalises a nullable timestamp to UTC.
func OptionalTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// NotFound maps gorm.ErrRecordNotFound to errs.ObjectNotFoundError and
// passes every other error through.
func NotFound(err error, entity string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(entity, key)
	}
	return err
}

// Update writes every column of dto, zero values included, to the row with
// the given primary key.
func Update(db *gorm.DB, model any, id uuid.UUID, dto any, entity string) error {
	result := db.Model(model).Where("id = ?", id).Select("*").Updates(dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return nil
}

// Delete removes the row with the given primary key.
func Delete(db *gorm.DB, model any, id uuid.UUID, entity string) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	return nil
}
