package note

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

type (
	Repository interface {
		CreateNote(ctx context.Context, n Note) (Note, error)
		GetNote(ctx context.Context, id int64) (Note, error)
		// QueryNotes returns the notes of userID, newest first.
		QueryNotes(ctx context.Context, userID int64) ([]Note, error)
		DeleteNote(ctx context.Context, id, userID int64) error
	}

	Service interface {
		Create(ctx context.Context, ownerID int64, nn NewNote) (Note, error)
		List(ctx context.Context, ownerID int64) ([]Note, error)
		Delete(ctx context.Context, ownerID, id int64) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, ownerID int64, nn NewNote) (Note, error) {
	n, err := svc.repo.CreateNote(ctx, Note{
		UserID:    ownerID,
		Content:   nn.Content,
		Tag:       nn.Tag,
		CreatedAt: core.NowFunc().UTC(),
	})
	return n, errors.Wrap(err, "creating note")
}

func (svc *service) List(ctx context.Context, ownerID int64) ([]Note, error) {
	return svc.repo.QueryNotes(ctx, ownerID)
}

func (svc *service) Delete(ctx context.Context, ownerID, id int64) error {
	n, err := svc.repo.GetNote(ctx, id)
	if err != nil {
		return err
	}
	if err = core.CheckOwner(n.UserID, ownerID); err != nil {
		return err
	}
	return svc.repo.DeleteNote(ctx, id, ownerID)
}
