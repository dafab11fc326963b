package testutils

import (
	"database/sql"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"taskhive/taskhive/database"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupMockDB sets up a sqlmock-backed database connection for tests that
// assert on the exact SQL issued or inject driver-level errors.
func SetupMockDB() (*database.Database, sqlmock.Sqlmock, func()) {
	var db *sql.DB
	var mock sqlmock.Sqlmock
	var err error

	db, mock, err = sqlmock.New()
	if err != nil {
		panic(err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic(err)
	}

	mockDB := &database.Database{
		DB: gormDB,
	}

	close := func() {
		db.Close()
	}

	return mockDB, mock, close
}

// SetupTestDB sets up an in-memory sqlite database with the full schema
// migrated, for tests that exercise real query behavior.
func SetupTestDB() (*database.Database, func()) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	if err := database.RunMigrations(gormDB); err != nil {
		panic(err)
	}

	testDB := &database.Database{DB: gormDB}

	close := func() {
		testDB.Close()
	}

	return testDB, close
}
