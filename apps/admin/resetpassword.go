package main

import (
	"context"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	return cli.accSvc.ResetPassword(context.Background(), core.CleanString(uname), pwd)
}
