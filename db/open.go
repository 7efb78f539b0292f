package db

import "fmt"

const (
	DriverSQLite = "sqlite"
	DriverYAML   = "yaml"
)

// Open creates and initializes the store for the given driver. For sqlite path is
// the database file, for yaml it is the directory holding the record files.
func Open(driver, path string) (Store, error) {
	var store Store
	switch driver {
	case DriverSQLite, "":
		db, err := New(path)
		if err != nil {
			return nil, err
		}
		store = db
	case DriverYAML:
		store = NewFileStore(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q, supported drivers are: %s, %s", driver, DriverSQLite, DriverYAML)
	}

	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
