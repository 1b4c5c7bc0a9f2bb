package account

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

var (
	// errors
	ErrNotFound           = errors.New("account not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type (
	Repository interface {
		// CreateAccount returns ErrUsernameExists when the username is taken.
		CreateAccount(ctx context.Context, acc Account) (Account, error)
		GetAccountByID(ctx context.Context, id int64) (Account, error)
		GetAccountByUsername(ctx context.Context, username string) (Account, error)
		UpdatePassword(ctx context.Context, id int64, hash []byte) error
	}

	Service interface {
		Register(ctx context.Context, na NewAccount) (Account, error)
		Authenticate(ctx context.Context, creds Credentials) (Account, error)
		GetByID(ctx context.Context, id int64) (Account, error)
		GetByUsername(ctx context.Context, username string) (Account, error)
		ResetPassword(ctx context.Context, username, pwd string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// passwordTooLongText is shown for passwords bcrypt cannot hash (over 72 bytes).
const passwordTooLongText = "password must be at most 72 bytes long"

func uniquenessError() error {
	return core.NewValidationError(ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
}

func (svc *service) checkUniqueness(ctx context.Context, username string) error {
	_, err := svc.repo.GetAccountByUsername(ctx, username)
	switch errors.Cause(err) {
	case nil:
		return uniquenessError()
	case ErrNotFound:
		return nil
	default:
		return errors.Wrap(err, "checking username uniqueness")
	}
}

// hashPassword sets the password of acc; bcrypt's length limit is reported as a field error.
func hashPassword(acc *Account, pwd string) error {
	if err := acc.SetPassword(pwd); err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return core.NewValidationError(err, core.FieldError{Field: "password", Error: passwordTooLongText})
		}
		return errors.Wrap(err, "hashing password")
	}
	return nil
}

func (svc *service) Register(ctx context.Context, na NewAccount) (Account, error) {
	if err := svc.checkUniqueness(ctx, na.Username); err != nil {
		return Account{}, err
	}

	acc := Account{
		Username:  na.Username,
		CreatedAt: time.Now().UTC(),
	}
	if err := hashPassword(&acc, na.Password); err != nil {
		return Account{}, err
	}

	acc, err := svc.repo.CreateAccount(ctx, acc)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Cause(err) == ErrUsernameExists {
			return Account{}, uniquenessError()
		}
		return Account{}, errors.Wrap(err, "creating account")
	}
	return acc, nil
}

func (svc *service) Authenticate(ctx context.Context, creds Credentials) (Account, error) {
	acc, err := svc.repo.GetAccountByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, errors.Wrap(err, "finding account by username")
	}
	if err = acc.CheckPassword(creds.Password); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acc, nil
}

func (svc *service) GetByID(ctx context.Context, id int64) (Account, error) {
	return svc.repo.GetAccountByID(ctx, id)
}

func (svc *service) GetByUsername(ctx context.Context, username string) (Account, error) {
	return svc.repo.GetAccountByUsername(ctx, username)
}

func (svc *service) ResetPassword(ctx context.Context, username, pwd string) error {
	acc, err := svc.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err = hashPassword(&acc, pwd); err != nil {
		return err
	}
	return svc.repo.UpdatePassword(ctx, acc.ID, acc.PasswordHash)
}
