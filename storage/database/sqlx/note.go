package sqlxrepos

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/volatiletech/null/v8"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
)

const noteTable = "notes"

var noteColumns = []string{"id", "user_id", "content", "tag", "created_at"}

// noteRow mirrors the notes table, where tag is nullable.
type noteRow struct {
	ID        int64       `db:"id"`
	UserID    int64       `db:"user_id"`
	Content   string      `db:"content"`
	Tag       null.String `db:"tag"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r noteRow) note() note.Note {
	return note.Note{
		ID:        r.ID,
		UserID:    r.UserID,
		Content:   r.Content,
		Tag:       r.Tag.String,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type noteRepository struct {
	exec core.DBExecutor
}

var _ note.Repository = (*noteRepository)(nil)

func NewNoteRepository(exec core.DBExecutor) *noteRepository {
	return &noteRepository{exec: exec}
}

func (repo noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	q := psql.Insert(noteTable).
		Columns("user_id", "content", "tag", "created_at").
		Values(n.UserID, n.Content, null.NewString(n.Tag, n.Tag != ""), n.CreatedAt.UTC()).
		Suffix("RETURNING " + joinColumns(noteColumns))

	var row noteRow
	if err := get(ctx, repo.exec, &row, q, core.ErrNotFound, "inserting note"); err != nil {
		return note.Note{}, err
	}
	return row.note(), nil
}

func (repo noteRepository) GetNote(ctx context.Context, id int64) (note.Note, error) {
	q := psql.Select(noteColumns...).From(noteTable).Where(squirrel.Eq{"id": id})

	var row noteRow
	if err := get(ctx, repo.exec, &row, q, core.ErrNotFound, "finding note"); err != nil {
		return note.Note{}, err
	}
	return row.note(), nil
}

func (repo noteRepository) QueryNotes(ctx context.Context, userID int64) ([]note.Note, error) {
	q := psql.Select(noteColumns...).
		From(noteTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	var rows []noteRow
	if err := list(ctx, repo.exec, &rows, q, "querying notes"); err != nil {
		return nil, err
	}
	notes := make([]note.Note, 0, len(rows))
	for _, r := range rows {
		notes = append(notes, r.note())
	}
	return notes, nil
}

func (repo noteRepository) DeleteNote(ctx context.Context, id, userID int64) error {
	q := psql.Delete(noteTable).Where(squirrel.Eq{"id": id, "user_id": userID})
	return execOne(ctx, repo.exec, q, core.ErrNotFound, "deleting note")
}
