package inmemdb

import (
	"context"

	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

type accountRepository struct {
	db *table[account.Account]
}

var _ account.Repository = (*accountRepository)(nil)

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db.account}
}

func (repo *accountRepository) CreateAccount(_ context.Context, acc account.Account) (account.Account, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range repo.db.rows {
		if row.Username == acc.Username {
			return account.Account{}, account.ErrUsernameExists
		}
	}
	acc.ID = repo.db.nextID()
	repo.db.rows[acc.ID] = &acc
	return acc, nil
}

func (repo *accountRepository) GetAccountByID(_ context.Context, id int64) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if acc, ok := repo.db.rows[id]; ok {
		return *acc, nil
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) GetAccountByUsername(_ context.Context, username string) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acc := range repo.db.rows {
		if acc.Username == username {
			return *acc, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) UpdatePassword(_ context.Context, id int64, hash []byte) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	acc, ok := repo.db.rows[id]
	if !ok {
		return account.ErrNotFound
	}
	acc.PasswordHash = hash
	return nil
}
