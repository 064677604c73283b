package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"ntruencrypt/ntru"
	ntruio "ntruencrypt/ntru/io"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ntrucli:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ntrucli",
		Usage: "generate NTRUEncrypt keys and encrypt or decrypt short messages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Usage:   "YAML configuration file",
				EnvVars: []string{"NTRU_CONFIG"},
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "log level (debug, info, warn, error); overrides the config file",
			},
		},
		Commands: []*cli.Command{
			genCommand(),
			encryptCommand(),
			decryptCommand(),
			paramsCommand(),
		},
	}
}

// setup loads the configuration and builds the logger for one command.
func setup(c *cli.Context) (ntruio.Config, zerolog.Logger, error) {
	cfg, err := ntruio.Load(c.String(flagConfig))
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	level := cfg.LogLevel()
	if s := c.String(flagLogLevel); s != "" {
		if level, err = zerolog.ParseLevel(s); err != nil {
			return cfg, zerolog.Nop(), err
		}
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(level)
	if level <= zerolog.DebugLevel {
		ntru.SetLogger(log.With().Str("pkg", "ntru").Logger())
	}
	return cfg, log, nil
}
