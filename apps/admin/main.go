package main

import (
	"context"
	"log"
	"os"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
	"github.com/Maar1i/Asistente-Escolar-APP/storage/database"
	sqlxrepos "github.com/Maar1i/Asistente-Escolar-APP/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	// set up DB
	if err := database.CreateIfNotExist(context.Background(), conf); err != nil {
		logger.Fatal(err)
	}
	db, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:     db.DB,
		accSvc: account.NewService(sqlxrepos.NewAccountRepository(db)),
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		_ = db.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
