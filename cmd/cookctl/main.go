// Command cookctl derives launchpad addresses, decodes launchpad accounts and
// follows live launch and marketplace state.
package main

import (
	"context"
	"crypto/ed25519"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/app"
	"github.com/letscook/cook-client/pkg/solana"
)

var (
	configPath = flag.String("config", "config.yaml", "configuration file path")
	userFlag   = flag.String("user", "", "wallet whose join record watch-launch also follows")
)

const usage = `usage: cookctl [-config path] <command> [args]

commands:
  derive <kind> [args]       print a derived address; kinds: %s
  decode <kind> <address>    fetch an account and print it as json; kinds: %s
  watch-launch <page>        print launch state on every change
  watch-marketplace <mint>   print a collection's marketplace on every change
`

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, strings.Join(deriverKinds(), ", "), strings.Join(recordKinds(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(context.Background(), os.Stdout, flag.Args()); err != nil {
		logrus.StandardLogger().WithError(err).Error("cookctl failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("no command given")
	}

	command, args := args[0], args[1:]

	// Derivation never needs the network.
	if command == "derive" {
		if len(args) == 0 {
			return errors.New("derive requires an address kind")
		}
		address, bump, err := deriveAddress(args[0], args[1:])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %d\n", solana.PublicKeyString(address), bump)
		return nil
	}

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	ctx, env, err := app.Setup(ctx, config)
	if err != nil {
		return err
	}
	defer env.Close()

	switch command {
	case "decode":
		if len(args) != 2 {
			return errors.New("decode requires a record kind and an address")
		}
		address, err := parseKey("address", args[1])
		if err != nil {
			return err
		}
		record, err := decodeAccount(ctx, env.Reader, args[0], address)
		if err != nil {
			return err
		}
		rendered, err := renderJSON(record)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(rendered))
		return nil

	case "watch-launch":
		if len(args) != 1 {
			return errors.New("watch-launch requires a page name")
		}
		var user ed25519.PublicKey
		if *userFlag != "" {
			user, err = parseKey("user", *userFlag)
			if err != nil {
				return err
			}
		}
		return app.RunUntilSignal(ctx, config, func(ctx context.Context) error {
			return watchLaunch(ctx, out, env.Reader, env.Settings, args[0], user)
		})

	case "watch-marketplace":
		if len(args) != 1 {
			return errors.New("watch-marketplace requires a collection mint")
		}
		collection, err := parseKey("collection mint", args[0])
		if err != nil {
			return err
		}
		return app.RunUntilSignal(ctx, config, func(ctx context.Context) error {
			return watchMarketplace(ctx, out, env.Reader, collection)
		})
	}

	return errors.Errorf("unknown command %q", command)
}
