package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

const accountTable = "accounts"

var accountColumns = []string{"id", "username", "password_hash", "created_at"}

type accountRepository struct {
	exec core.DBExecutor
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(exec core.DBExecutor) *accountRepository {
	return &accountRepository{exec: exec}
}

func (repo accountRepository) CreateAccount(ctx context.Context, acc account.Account) (account.Account, error) {
	q := psql.Insert(accountTable).
		Columns("username", "password_hash", "created_at").
		Values(acc.Username, acc.PasswordHash, acc.CreatedAt.UTC()).
		Suffix("RETURNING " + joinColumns(accountColumns))

	var created account.Account
	if err := get(ctx, repo.exec, &created, q, account.ErrNotFound, "inserting account"); err != nil {
		if isUniqueViolation(err) {
			return account.Account{}, account.ErrUsernameExists
		}
		return account.Account{}, err
	}
	return created, nil
}

func (repo accountRepository) GetAccountByID(ctx context.Context, id int64) (account.Account, error) {
	q := psql.Select(accountColumns...).From(accountTable).Where(squirrel.Eq{"id": id})

	var acc account.Account
	err := get(ctx, repo.exec, &acc, q, account.ErrNotFound, "finding account by ID")
	return acc, err
}

func (repo accountRepository) GetAccountByUsername(ctx context.Context, username string) (account.Account, error) {
	q := psql.Select(accountColumns...).From(accountTable).Where(squirrel.Eq{"username": username})

	var acc account.Account
	err := get(ctx, repo.exec, &acc, q, account.ErrNotFound, "finding account by username")
	return acc, err
}

func (repo accountRepository) UpdatePassword(ctx context.Context, id int64, hash []byte) error {
	q := psql.Update(accountTable).Set("password_hash", hash).Where(squirrel.Eq{"id": id})
	return execOne(ctx, repo.exec, q, account.ErrNotFound, "updating password")
}
