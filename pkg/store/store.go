// Package store implements the persistent storage of command history.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.yle.sh/pkg/logutil"
	"src.yle.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const bucketCmd = "cmd"

// Functions that initialize the database, keyed by a description of what
// they do.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend. It is safe for concurrent use
// within one process; bbolt locks the file against other processes.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	return bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
}

// NewStore opens or creates the database file dbname.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB, creating the buckets
// that do not exist yet.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
