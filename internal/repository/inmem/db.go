// Package inmem is a row store held in process memory. It backs the "memory" database
// driver for local development and the service tests.
package inmem

import (
	"sync"
	"time"
)

type DB struct {
	mutex     sync.RWMutex
	quizzes   []*quizRow
	questions []*questionRow
	attempts  []*attemptRow
	answers   map[answerKey]*answerRow
	resources []*resourceRow
	seq       int

	// Now stamps created_at on insert.
	Now func() time.Time
}

func Open() *DB {
	return &DB{
		answers: make(map[answerKey]*answerRow),
		Now:     time.Now,
	}
}

// next returns an increasing insertion number used to keep ordering stable when
// timestamps tie.
func (db *DB) next() int {
	db.seq++
	return db.seq
}
