package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db *gorm.DB
	mu sync.RWMutex
)

// InitDB stores the shared database handle for code that is not constructed
// with one.
func InitDB(database *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	db = database
}

func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
