package persistence

import (
	"testing"

	"github.com/agro/backend/internal/domain/agenda"
	"github.com/agro/backend/internal/domain/farm"
	"github.com/agro/backend/internal/domain/identity"
	"github.com/agro/backend/internal/domain/partner"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&identity.RefreshToken{},
		&farm.Field{},
		&farm.LivestockHistory{},
		&farm.LivestockTransaction{},
		&farm.LivestockExpense{},
		&farm.RainfallRecord{},
		&agenda.Event{},
		&partner.Request{},
	))
	return db
}
