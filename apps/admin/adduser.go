package main

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
)

// addUser registers an account the same way the register form does.
func (cli *commandLine) addUser(uname, pwd string) error {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	na := account.NewAccount{Username: uname, Password: pwd}
	if err := na.Validate(validate); err != nil {
		return err
	}
	_, err := cli.accSvc.Register(context.Background(), na)
	return err
}
