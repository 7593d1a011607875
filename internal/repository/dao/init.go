package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Video{},
		&Kit{},
		&KitVideo{},
		&Payment{},
		&KitPurchase{},
		&PaymentSettings{},
	)
}

// isUniqueViolation recognises Postgres unique violations by code, and the
// SQLite equivalent by message. constraint narrows the Postgres check when set.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation &&
			(constraint == "" || strings.Contains(pgErr.Message, constraint))
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
