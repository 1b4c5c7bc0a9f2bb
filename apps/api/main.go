package main

import (
	"context"
	"expvar"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/jmoiron/sqlx"
	"go.uber.org/dig"

	dig_container "github.com/Maar1i/Asistente-Escolar-APP/apps/api/di/dig"
	echoapi "github.com/Maar1i/Asistente-Escolar-APP/apps/api/echo"
	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/services/metrics"
)

type appParams struct {
	dig.In
	Conf          *core.Config
	APILogger     core.Logger
	DBLoggerParam dig_container.DBLoggerParam
	DB            *sqlx.DB `optional:"true"`
	Metrics       *metrics.Metrics
	Server        *echoapi.Server
}

func main() {
	inMemory := flag.Bool("inmem", false, "keep every record in memory instead of PostgreSQL")
	flag.Parse()

	c := dig_container.New(*inMemory)
	must(c.Invoke(run))
}

func run(p appParams) {
	conf, apiLogger := p.Conf, p.APILogger

	// =========================================================================
	// Initialize App

	apiLogger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))

	if p.DB != nil {
		dbLogger := p.DBLoggerParam.Logger
		defer func() {
			if err := p.DB.Close(); err != nil {
				dbLogger.Fatal("Failed to close", err)
			}
		}()
	}
	defer apiLogger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - prometheus collectors.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	http.Handle("/metrics", p.Metrics.Handler())

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			apiLogger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := p.Server
	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				apiLogger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
