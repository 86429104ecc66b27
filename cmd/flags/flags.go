// Package flags holds the CLI flag definitions and setup helpers shared by
// the registry tools.
package flags

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/ocn-tools/ocn-registry/common"
	"github.com/ocn-tools/ocn-registry/httpserver"
	"github.com/ocn-tools/ocn-registry/interfaces"
	"github.com/ocn-tools/ocn-registry/registry"
)

var RPCAddrFlag = &cli.StringFlag{
	Name:  "rpc-addr",
	Value: "http://127.0.0.1:8545",
	Usage: "JSON-RPC endpoint of a node on the target chain",
}

var ContractFlag = &cli.StringFlag{
	Name:     "contract",
	Required: true,
	Usage:    "address of the deployed registry contract",
}

var ChainIDFlag = &cli.Int64Flag{
	Name:  "chain-id",
	Value: registry.Local.ChainID,
	Usage: "EIP-155 chain id used when signing transactions",
}

var NetworkNameFlag = &cli.StringFlag{
	Name:  "network",
	Value: registry.Local.Name,
	Usage: "human-readable network label used in logs",
}

var SignerFlag = &cli.StringFlag{
	Name:  "signer",
	Usage: "hex private key of the party authorizing the change",
}

var SpenderFlag = &cli.StringFlag{
	Name:  "spender",
	Usage: "hex private key paying for the transaction; with it set, the signer key only authorizes (delegated mode)",
}

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on for the read API",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}

var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}

var LogJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}

var LogUIDFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "ocn-registry",
	Usage: "add 'service' tag to logs",
}

// RegistryFlags are the connection flags every registry tool needs.
var RegistryFlags = []cli.Flag{
	RPCAddrFlag,
	ContractFlag,
	ChainIDFlag,
	NetworkNameFlag,
}

// LoggingFlags are the shared logger flags.
var LoggingFlags = []cli.Flag{
	LogJSONFlag,
	LogDebugFlag,
	LogUIDFlag,
	LogServiceFlag,
}

// SetupLogger builds the process logger from the logging flags.
func SetupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJSONFlag.Name),
		Service: cCtx.String(LogServiceFlag.Name),
		Version: common.Version,
	})

	if cCtx.Bool(LogUIDFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

// Environment assembles the registry environment from the connection flags.
func Environment(cCtx *cli.Context) (registry.Environment, error) {
	contract, err := interfaces.ParseAddress(cCtx.String(ContractFlag.Name))
	if err != nil {
		return registry.Environment{}, fmt.Errorf("could not parse contract address: %w", err)
	}

	return registry.Environment{
		Name:     cCtx.String(NetworkNameFlag.Name),
		RPC:      cCtx.String(RPCAddrFlag.Name),
		ChainID:  cCtx.Int64(ChainIDFlag.Name),
		Contract: contract,
	}, nil
}

// ServerConfig assembles the HTTP server configuration from the server
// flags.
func ServerConfig(cCtx *cli.Context, logger *slog.Logger) *httpserver.HTTPServerConfig {
	return &httpserver.HTTPServerConfig{
		ListenAddr:               cCtx.String(ListenAddrFlag.Name),
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		Log:                      logger,
		DrainDuration:            time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}
