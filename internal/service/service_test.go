package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inamhi-tic/helpdesk-service/internal/model"
)

// newTestDB opens an in-memory sqlite database with the schema and a small
// catalog seed. TranslateError mirrors the production postgres setup so the
// duplicate-key mapping behaves the same.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.CatalogArea{},
		&model.CatalogType{},
		&model.User{},
		&model.Ticket{},
	))

	areas := []model.CatalogArea{
		{Name: "Gestión de Tecnologías (TIC)"},
		{Name: "Dirección de Meteorología"},
		{Name: "Planificación"},
	}
	require.NoError(t, db.Create(&areas).Error)

	types := []model.CatalogType{
		{Name: "Problemas de hardware (Físico)"},
		{Name: "Problemas con impresoras"},
		{Name: "Otros"},
	}
	require.NoError(t, db.Create(&types).Error)

	return db
}
