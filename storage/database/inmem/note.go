package inmemdb

import (
	"context"
	"sort"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
)

type noteRepository struct {
	db *table[note.Note]
}

var _ note.Repository = (*noteRepository)(nil)

func NewNoteRepository(db *DB) note.Repository {
	return &noteRepository{db: db.note}
}

func (repo *noteRepository) CreateNote(_ context.Context, n note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n.ID = repo.db.nextID()
	repo.db.rows[n.ID] = &n
	return n, nil
}

func (repo *noteRepository) GetNote(_ context.Context, id int64) (note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if n, ok := repo.db.rows[id]; ok {
		return *n, nil
	}
	return note.Note{}, core.ErrNotFound
}

func (repo *noteRepository) QueryNotes(_ context.Context, userID int64) ([]note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notes := repo.db.filter(func(n note.Note) bool { return n.UserID == userID })
	// newest first; ties keep the most recently inserted first
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].ID > notes[j].ID
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (repo *noteRepository) DeleteNote(_ context.Context, id, userID int64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if n, ok := repo.db.rows[id]; !ok || n.UserID != userID {
		return core.ErrNotFound
	}
	delete(repo.db.rows, id)
	return nil
}
