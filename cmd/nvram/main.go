// Command nvram demonstrates file-backed persistent variables: a small set
// of counters restored at startup and saved on normal exit.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/nvram"
	"github.com/hupe1980/nvram/blobstore"
	"github.com/hupe1980/nvram/config"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	backend    string
	name       string
	dir        string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "nvram",
		Short:         "File-backed persistent variables",
		Long:          "nvram keeps a fixed block of variables in a backing store, restoring them at startup and saving them on normal exit.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&g.backend, "backend", "", "backing store (file, memory, s3, minio, dynamodb, sqlite)")
	pf.StringVar(&g.name, "name", "", "store name (default nvram.blk)")
	pf.StringVar(&g.dir, "dir", "", "directory of the file backend")
	pf.StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newRunCmd(g),
		newEditCmd(g),
		newInspectCmd(g),
		newLayoutCmd(),
		newResetCmd(g),
	)
	return root
}

// loadConfig resolves the config and applies explicitly set flags on top.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = g.backend
	}
	if flags.Changed("name") {
		cfg.Name = g.name
	}
	if flags.Changed("dir") {
		cfg.File.Dir = g.dir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore returns the configured store and a function releasing it.
func (g *globalFlags) openStore(cmd *cobra.Command) (*config.Config, blobstore.BlobStore, func(), error) {
	cfg, err := g.loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := config.OpenStore(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	release := func() {
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}
	}
	return cfg, store, release, nil
}

// initialize opens the store and runs Initialize on the demo region.
// A fatal outcome is returned as an error; the store is released by then.
func (g *globalFlags) initialize(cmd *cobra.Command) (*nvram.Manager[Counters], nvram.Outcome, func(), error) {
	cfg, store, release, err := g.openStore(cmd)
	if err != nil {
		return nil, nvram.OutcomeFatal, nil, err
	}

	m, err := nvram.New(store, cfg.Name, defaultCounters(),
		nvram.WithLogger(cfg.LoggerTo(cmd.ErrOrStderr())),
	)
	if err != nil {
		release()
		return nil, nvram.OutcomeFatal, nil, err
	}

	outcome, err := m.Initialize(cmd.Context())
	if outcome.IsFatal() {
		release()
		return nil, outcome, nil, fmt.Errorf("nvram %s: %w", cfg.Name, err)
	}
	return m, outcome, release, nil
}
