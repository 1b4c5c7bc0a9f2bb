package account

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

// Account holds the credentials of a registered student.
type Account struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // UTC
}

// DisplayName is what the assistant and the views call the account.
func (a Account) DisplayName() string {
	return a.Username
}

func (a *Account) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

func (a Account) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(pwd))
}

// NewAccount contains information needed to register an Account.
type NewAccount struct {
	Username        string `form:"username" validate:"required,min=3,max=150"`
	Password        string `form:"password" validate:"required"`
	PasswordConfirm string `form:"password_confirm" validate:"omitempty,eqfield=Password"`
}

func (na *NewAccount) Validate(validate *validator.Validate) error {
	na.Username = core.CleanString(na.Username)
	return validate.Struct(na)
}

// Credentials are submitted by the login form.
type Credentials struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func (c *Credentials) Validate(validate *validator.Validate) error {
	c.Username = core.CleanString(c.Username)
	return validate.Struct(c)
}
