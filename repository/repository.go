// Package repository defines the storage interfaces the services consume and
// their GORM/MySQL implementations. Services never see gorm or driver errors:
// everything is mapped onto the failure taxonomy here.
package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"grandstay-backend/failure"
)

const mysqlErrDuplicateEntry = 1062

// mapStorageError translates a gorm/driver error into a failure the caller may
// surface. The raw diagnostic is logged and never returned.
func mapStorageError(log zerolog.Logger, err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return failure.NotFound(entity)
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return failure.Conflict(entity + " already exists")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("entity", entity).Msg("storage call timed out")
		return failure.TransientStorage()
	}
	log.Error().Err(err).Str("entity", entity).Msg("storage call failed")
	return failure.TransientStorage()
}
