package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/device-management-toolkit/amtctl/config"
	"github.com/device-management-toolkit/amtctl/internal/amt"
	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

var initializeConfigFunc = config.NewConfig

type cli struct {
	out         io.Writer
	configPath  string
	debug       bool
	metricsFile string
	connect     func() (*amt.Device, error)
}

// NewRootCommand returns the amtctl command tree writing results to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	c := &cli{out: out}
	c.connect = c.connectFromConfig

	return c.root()
}

func (c *cli) connectFromConfig() (*amt.Device, error) {
	cfg, err := initializeConfigFunc(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("app - config: %w", err)
	}

	cfg.Version = Version

	log := logger.New(cfg.Level)
	logger.SetupStdLog(log)

	device, err := Connect(cfg, log)
	if err != nil {
		return nil, err
	}

	if c.debug {
		device.SetDebug(true)
	}

	return device, nil
}

func (c *cli) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "amtctl",
		Short:         "Manage an Intel AMT device over WS-Management",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if c.metricsFile == "" {
				return nil
			}

			return prometheus.WriteToTextfile(c.metricsFile, prometheus.DefaultGatherer)
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to config.yml (default: next to the executable)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "Log every WS-Management request")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "Write request metrics in Prometheus text format to this file")

	root.AddCommand(c.powerCmd())
	root.AddCommand(c.kvmCmd())
	root.AddCommand(c.redirectionCmd())
	root.AddCommand(c.optInCmd())
	root.AddCommand(c.bootCmd())
	root.AddCommand(c.dumpCmd())
	root.AddCommand(c.getCmd())
	root.AddCommand(c.enumerateCmd())

	return root
}

// run connects to the device before calling fn.
func (c *cli) run(fn func(d *amt.Device, args []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		device, err := c.connect()
		if err != nil {
			return err
		}

		return fn(device, args)
	}
}

func (c *cli) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

func (c *cli) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	c.printf("%s\n", out)

	return nil
}
