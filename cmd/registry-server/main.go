package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/ocn-tools/ocn-registry/cmd/flags"
	"github.com/ocn-tools/ocn-registry/httpserver"
	"github.com/ocn-tools/ocn-registry/registry"
)

func main() {
	app := &cli.App{
		Name:  "registry-server",
		Usage: "Serve the OCN registry read API over HTTP",
		Flags: append(append([]cli.Flag{
			flags.ListenAddrFlag,
			flags.PprofFlag,
			flags.DrainSecondsFlag,
		}, flags.RegistryFlags...), flags.LoggingFlags...),
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	env, err := flags.Environment(cCtx)
	if err != nil {
		return err
	}

	// The server only reads; no signing key is installed.
	client, err := registry.Dial(cCtx.Context, env, nil)
	if err != nil {
		return err
	}
	logger.Info("Connected to registry",
		"network", env.Name,
		"rpc", env.RPC,
		"contract", env.Contract.Hex(),
	)

	srv, err := httpserver.New(flags.ServerConfig(cCtx, logger), httpserver.NewHandler(client, logger))
	if err != nil {
		return err
	}
	srv.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit
	logger.Info("Shutting down...")
	srv.Shutdown()
	return nil
}
