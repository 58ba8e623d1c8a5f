// Command mvccsh is an interactive shell over the mvcc core: every
// line typed is parsed into an mvcc.Command and executed against one
// Connection, the same path any embedder of the mvcc package would use.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mukeshjc/mvcc-isolation/v2/config"
	"github.com/mukeshjc/mvcc-isolation/v2/mvcc"
)

var cfgIsolation string
var cfgDebug bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mvccsh",
		Short: "interactive shell for the in-memory MVCC key-value core",
	}

	root.PersistentFlags().StringVar(&cfgIsolation, "isolation", "", "default isolation level (overrides config/env)")
	root.PersistentFlags().BoolVar(&cfgDebug, "debug", false, "enable debug logging")

	root.AddCommand(newReplCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the mvccsh version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("mvccsh (mvcc-isolation core)")
			return nil
		},
	}
}

func loadConfig() (config.Config, error) {
	var cfg config.Config
	if err := config.Load("MVCC_", &cfg); err != nil {
		return cfg, err
	}
	if cfgIsolation != "" {
		cfg.DefaultIsolation = cfgIsolation
	}
	if cfgDebug {
		cfg.Debug = true
	}
	return cfg, nil
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	if !debug {
		return zap.NewNop().Sugar(), nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

func newDatabase(cfg config.Config) (*mvcc.Database, error) {
	isolation, err := config.ParseIsolation(cfg.DefaultIsolation)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return nil, err
	}
	return mvcc.NewDatabase(isolation, mvcc.WithLogger(logger)), nil
}
