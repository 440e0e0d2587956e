package core

import (
	"context"

	"github.com/NathanHymers98/spacebar/cache"
	"github.com/NathanHymers98/spacebar/storage"
	"gorm.io/gorm"
)

func checkDatabaseHealth(db *gorm.DB) string {
	if db == nil {
		return "not initialized"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func checkCacheHealth(provider cache.Provider) string {
	if provider == nil {
		return "not initialized"
	}
	return "ok"
}

func checkStorageHealth(ctx context.Context, store *storage.Factory) string {
	if store == nil {
		return "not initialized"
	}
	if err := store.Health(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
