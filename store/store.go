package store

import (
	"database/sql"
	"sync"
)

type Store struct {
	db *sql.DB

	UserCache sync.Map // map[int32]*model.User
	BookCache sync.Map // map[int]*model.Book
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) DBStats() sql.DBStats {
	return s.db.Stats()
}

func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}
