package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"ntruencrypt/ntru"
	ntruio "ntruencrypt/ntru/io"
)

func genCommand() *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "generate a key pair and save it in the key store",
		UsageText: "ntrucli gen --name KEY [--params NAME] [--seed HEX]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "key name", Required: true},
			&cli.StringFlag{Name: "params", Usage: "parameter set (default from config)"},
			&cli.StringFlag{Name: "seed", Usage: "hex seed for deterministic generation"},
		},
		Action: runGen,
	}
}

func runGen(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	name := cfg.Params
	if c.IsSet("params") {
		name = c.String("params")
	}
	params, err := ntru.Lookup(name)
	if err != nil {
		return err
	}

	var key *ntru.PrivateKey
	if c.IsSet("seed") {
		seed, err := ntruio.DecodeHex(c.String("seed"))
		if err != nil {
			return err
		}
		key, err = ntru.GenerateKeyFromSeed(params, seed)
		if err != nil {
			return err
		}
	} else if key, err = ntru.GenerateKey(params, nil); err != nil {
		return err
	}
	defer key.Zero()

	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := c.Context
	keyName := c.String("name")
	if err := store.SavePrivate(ctx, keyName, key); err != nil {
		return err
	}
	if err := store.SavePublic(ctx, keyName, key.Public()); err != nil {
		return err
	}
	log.Info().Str("key", keyName).Str("params", params.Name).Msg("generated key pair")
	return nil
}

func ioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "key name", Required: true},
		&cli.StringFlag{Name: "in", Usage: "input file, - for stdin", Value: "-"},
		&cli.StringFlag{Name: "out", Usage: "output file, - for stdout", Value: "-"},
	}
}

func encryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "encrypt",
		Usage:     "encrypt a message under a stored public key",
		UsageText: "ntrucli encrypt --name KEY [--in FILE] [--out FILE]",
		Flags:     ioFlags(),
		Action: func(c *cli.Context) error {
			return transform(c, func(ctx context.Context, s keyLoader, name string, in []byte) ([]byte, error) {
				pub, err := s.LoadPublic(ctx, name)
				if err != nil {
					return nil, err
				}
				return pub.Encrypt(in, nil)
			})
		},
	}
}

func decryptCommand() *cli.Command {
	return &cli.Command{
		Name:      "decrypt",
		Usage:     "decrypt a ciphertext with a stored private key",
		UsageText: "ntrucli decrypt --name KEY [--in FILE] [--out FILE]",
		Flags:     ioFlags(),
		Action: func(c *cli.Context) error {
			return transform(c, func(ctx context.Context, s keyLoader, name string, in []byte) ([]byte, error) {
				priv, err := s.LoadPrivate(ctx, name)
				if err != nil {
					return nil, err
				}
				defer priv.Zero()
				return priv.Decrypt(in)
			})
		},
	}
}

type keyLoader interface {
	LoadPublic(ctx context.Context, name string) (*ntru.PublicKey, error)
	LoadPrivate(ctx context.Context, name string) (*ntru.PrivateKey, error)
}

// transform reads --in, applies op with the named key and writes --out.
func transform(c *cli.Context, op func(context.Context, keyLoader, string, []byte) ([]byte, error)) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	in, err := readInput(c.String("in"))
	if err != nil {
		return err
	}
	store, closeStore, err := cfg.OpenStore()
	if err != nil {
		return err
	}
	defer closeStore()

	out, err := op(c.Context, store, c.String("name"), in)
	if err != nil {
		return err
	}
	log.Debug().Str("command", c.Command.Name).Int("in", len(in)).Int("out", len(out)).Msg("done")
	return writeOutput(c.String("out"), out)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return b, errors.Wrap(err, "read stdin")
	}
	b, err := os.ReadFile(path)
	return b, errors.Wrapf(err, "read %s", path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return errors.Wrap(err, "write stdout")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write %s", path)
}

func paramsCommand() *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "list the parameter sets",
		Action: func(c *cli.Context) error {
			return printParams(c.App.Writer)
		},
	}
}

func printParams(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tN\tq\tTYPE\tFASTFP\tMAX MSG\tCIPHERTEXT")
	for _, name := range ntru.Names() {
		p, err := ntru.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%t\t%d\t%d\n",
			p.Name, p.N, p.Q, p.PolyType, p.FastFp, p.MaxMsgLen(), p.CiphertextLen())
	}
	return tw.Flush()
}
