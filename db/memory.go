package db

import (
	"fmt"

	"gorm.io/gorm"
)

// OpenInMemory returns a migrated sqlite database that lives for as long as
// the returned handle. Each distinct name is an isolated database.
func OpenInMemory(name string) (*gorm.DB, error) {
	db, err := ConnectDatabase("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))

	if err != nil {
		return nil, err
	}

	if err := MigrateDatabase(db); err != nil {
		return nil, err
	}

	return db, nil
}
