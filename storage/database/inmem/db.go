// Package inmemdb keeps every record in memory. It backs the tests and the `-inmem` dev mode.
package inmemdb

import (
	"sort"
	"sync"

	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
	"github.com/Maar1i/Asistente-Escolar-APP/core/grade"
	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
	"github.com/Maar1i/Asistente-Escolar-APP/core/notification"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
)

type (
	DB struct {
		account      *table[account.Account]
		task         *table[task.Task]
		event        *table[event.Event]
		note         *table[note.Note]
		grade        *table[grade.Grade]
		notification *table[notification.Notification]
	}

	table[T any] struct {
		sync.RWMutex
		rows map[int64]*T
		seq  int64
	}
)

func Open() *DB {
	return &DB{
		account:      newTable[account.Account](),
		task:         newTable[task.Task](),
		event:        newTable[event.Event](),
		note:         newTable[note.Note](),
		grade:        newTable[grade.Grade](),
		notification: newTable[notification.Notification](),
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]*T)}
}

// nextID must be called with the write lock held.
func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

// filter returns copies of the rows matching keep, in insertion order.
// It must be called with the lock held.
func (t *table[T]) filter(keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id, row := range t.rows {
		if keep(*row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, *t.rows[id])
	}
	return rows
}
