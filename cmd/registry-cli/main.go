package main

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/urfave/cli/v2"

	"github.com/ocn-tools/ocn-registry/cmd/flags"
	"github.com/ocn-tools/ocn-registry/cryptoutils"
	"github.com/ocn-tools/ocn-registry/interfaces"
	"github.com/ocn-tools/ocn-registry/registry"
)

func main() {
	app := &cli.App{
		Name:  "registry-cli",
		Usage: "Read and update the OCN registry contract",
		Flags: flags.RegistryFlags,
		Commands: []*cli.Command{
			nodeCommand,
			partyCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var nodeCommand = &cli.Command{
	Name:  "node",
	Usage: "Manage node listings",
	Subcommands: []*cli.Command{
		{
			Name:      "get",
			Usage:     "Print the node listed for an operator address",
			ArgsUsage: "<operator>",
			Action: func(cCtx *cli.Context) error {
				operator, err := interfaces.ParseAddress(cCtx.Args().First())
				if err != nil {
					return err
				}
				client, err := readOnlyClient(cCtx)
				if err != nil {
					return err
				}
				node, err := client.GetNode(cCtx.Context, operator)
				if err != nil {
					return err
				}
				if node == nil {
					return fmt.Errorf("operator %s has no node listing", operator.Hex())
				}
				return printJSON(node)
			},
		},
		{
			Name:  "list",
			Usage: "Print all listed nodes",
			Action: func(cCtx *cli.Context) error {
				client, err := readOnlyClient(cCtx)
				if err != nil {
					return err
				}
				nodes, err := client.GetAllNodes(cCtx.Context)
				if err != nil {
					return err
				}
				return printJSON(nodes)
			},
		},
		{
			Name:      "set",
			Usage:     "List the signer's node under the given URL",
			ArgsUsage: "<url>",
			Flags:     []cli.Flag{flags.SignerFlag, flags.SpenderFlag},
			Action: func(cCtx *cli.Context) error {
				return submit(cCtx, func(ctx context.Context, client *registry.Client, signer *ecdsa.PrivateKey, delegatedMode bool) (*types.Transaction, error) {
					if delegatedMode {
						return client.SetNodeRaw(ctx, cCtx.Args().First(), signer)
					}
					return client.SetNode(ctx, cCtx.Args().First())
				})
			},
		},
		{
			Name:  "delete",
			Usage: "Remove the signer's node listing",
			Flags: []cli.Flag{flags.SignerFlag, flags.SpenderFlag},
			Action: func(cCtx *cli.Context) error {
				return submit(cCtx, func(ctx context.Context, client *registry.Client, signer *ecdsa.PrivateKey, delegatedMode bool) (*types.Transaction, error) {
					if delegatedMode {
						return client.DeleteNodeRaw(ctx, signer)
					}
					return client.DeleteNode(ctx)
				})
			},
		},
	},
}

var partyCommand = &cli.Command{
	Name:  "party",
	Usage: "Manage party listings",
	Subcommands: []*cli.Command{
		{
			Name:      "get",
			Usage:     "Print the party registered under a wallet address",
			ArgsUsage: "<address>",
			Action: func(cCtx *cli.Context) error {
				address, err := interfaces.ParseAddress(cCtx.Args().First())
				if err != nil {
					return err
				}
				client, err := readOnlyClient(cCtx)
				if err != nil {
					return err
				}
				party, err := client.GetPartyByAddress(cCtx.Context, address)
				if err != nil {
					return err
				}
				if party == nil {
					return fmt.Errorf("no party registered under %s", address.Hex())
				}
				return printJSON(party)
			},
		},
		{
			Name:      "get-ocpi",
			Usage:     "Print the party registered under an OCPI country code and party id",
			ArgsUsage: "<countryCode> <partyId>",
			Action: func(cCtx *cli.Context) error {
				client, err := readOnlyClient(cCtx)
				if err != nil {
					return err
				}
				party, err := client.GetPartyByOcpi(cCtx.Context, cCtx.Args().Get(0), cCtx.Args().Get(1))
				if err != nil {
					return err
				}
				if party == nil {
					return fmt.Errorf("no party registered under %s %s", cCtx.Args().Get(0), cCtx.Args().Get(1))
				}
				return printJSON(party)
			},
		},
		{
			Name:  "list",
			Usage: "Print all registered parties",
			Action: func(cCtx *cli.Context) error {
				client, err := readOnlyClient(cCtx)
				if err != nil {
					return err
				}
				parties, err := client.GetAllParties(cCtx.Context)
				if err != nil {
					return err
				}
				return printJSON(parties)
			},
		},
		{
			Name:  "set",
			Usage: "Register the signer as an OCPI party",
			Flags: []cli.Flag{
				flags.SignerFlag,
				flags.SpenderFlag,
				&cli.StringFlag{Name: "country", Required: true, Usage: "2-character country code"},
				&cli.StringFlag{Name: "id", Required: true, Usage: "3-character party id"},
				&cli.StringSliceFlag{Name: "role", Required: true, Usage: "party role (CPO, EMSP, ...), repeatable"},
				&cli.StringFlag{Name: "operator", Required: true, Usage: "address of the node operator this party uses"},
			},
			Action: func(cCtx *cli.Context) error {
				operator, err := interfaces.ParseAddress(cCtx.String("operator"))
				if err != nil {
					return err
				}
				roles, err := parseRoles(cCtx.StringSlice("role"))
				if err != nil {
					return err
				}
				return submit(cCtx, func(ctx context.Context, client *registry.Client, signer *ecdsa.PrivateKey, delegatedMode bool) (*types.Transaction, error) {
					if delegatedMode {
						return client.SetPartyRaw(ctx, cCtx.String("country"), cCtx.String("id"), roles, operator, signer)
					}
					return client.SetParty(ctx, cCtx.String("country"), cCtx.String("id"), roles, operator)
				})
			},
		},
		{
			Name:  "delete",
			Usage: "Remove the signer's party listing",
			Flags: []cli.Flag{flags.SignerFlag, flags.SpenderFlag},
			Action: func(cCtx *cli.Context) error {
				return submit(cCtx, func(ctx context.Context, client *registry.Client, signer *ecdsa.PrivateKey, delegatedMode bool) (*types.Transaction, error) {
					if delegatedMode {
						return client.DeletePartyRaw(ctx, signer)
					}
					return client.DeleteParty(ctx)
				})
			},
		},
		{
			Name:  "set-modules",
			Usage: "Update the signer party's sender and receiver modules",
			Flags: []cli.Flag{
				flags.SignerFlag,
				flags.SpenderFlag,
				&cli.StringSliceFlag{Name: "sender", Usage: "module the party implements as sender, repeatable"},
				&cli.StringSliceFlag{Name: "receiver", Usage: "module the party implements as receiver, repeatable"},
			},
			Action: func(cCtx *cli.Context) error {
				sender, err := parseModules(cCtx.StringSlice("sender"))
				if err != nil {
					return err
				}
				receiver, err := parseModules(cCtx.StringSlice("receiver"))
				if err != nil {
					return err
				}
				return submit(cCtx, func(ctx context.Context, client *registry.Client, signer *ecdsa.PrivateKey, delegatedMode bool) (*types.Transaction, error) {
					if delegatedMode {
						return client.SetPartyModulesRaw(ctx, sender, receiver, signer)
					}
					return client.SetPartyModules(ctx, sender, receiver)
				})
			},
		},
	},
}

func readOnlyClient(cCtx *cli.Context) (*registry.Client, error) {
	env, err := flags.Environment(cCtx)
	if err != nil {
		return nil, err
	}
	return registry.Dial(cCtx.Context, env, nil)
}

// submit runs a write against the registry. With --spender set, the spender
// key pays for the transaction and the signer key only authorizes
// (delegated mode); otherwise the signer key is the transactor.
func submit(cCtx *cli.Context, write func(ctx context.Context, client *registry.Client, signer *ecdsa.PrivateKey, delegatedMode bool) (*types.Transaction, error)) error {
	signerHex := cCtx.String(flags.SignerFlag.Name)
	if signerHex == "" {
		return fmt.Errorf("--%s is required for write operations", flags.SignerFlag.Name)
	}
	signer, err := cryptoutils.PrivateKeyFromHex(signerHex)
	if err != nil {
		return fmt.Errorf("could not parse signer key: %w", err)
	}

	transactorKey := signer
	delegatedMode := false
	if spenderHex := cCtx.String(flags.SpenderFlag.Name); spenderHex != "" {
		transactorKey, err = cryptoutils.PrivateKeyFromHex(spenderHex)
		if err != nil {
			return fmt.Errorf("could not parse spender key: %w", err)
		}
		delegatedMode = true
	}

	env, err := flags.Environment(cCtx)
	if err != nil {
		return err
	}
	client, err := registry.Dial(cCtx.Context, env, transactorKey)
	if err != nil {
		return err
	}

	tx, err := write(cCtx.Context, client, signer, delegatedMode)
	if err != nil {
		return err
	}

	fmt.Printf("submitted %s, awaiting inclusion\n", tx.Hash().Hex())
	receipt, err := client.WaitMined(cCtx.Context, tx)
	if err != nil {
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	fmt.Printf("included in block %d\n", receipt.BlockNumber.Uint64())
	return nil
}

func parseRoles(names []string) ([]interfaces.Role, error) {
	roles := make([]interfaces.Role, 0, len(names))
	for _, name := range names {
		role, err := interfaces.RoleFromName(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func parseModules(names []string) ([]interfaces.Module, error) {
	modules := make([]interfaces.Module, 0, len(names))
	for _, name := range names {
		module, err := interfaces.ModuleFromName(name)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	return modules, nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
