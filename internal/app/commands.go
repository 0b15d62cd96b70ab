package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/device-management-toolkit/amtctl/internal/amt"
)

func atoi(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", amt.ErrValidation, name, s)
	}

	return n, nil
}

func (c *cli) powerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "power",
		Short: "Read or change the host power state",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "state",
		Short: "Show the current power state",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			state, err := d.Power.State()
			if err != nil {
				return err
			}

			c.printf("%s\n", state)

			return nil
		}),
	})

	transitions := []struct {
		use, short string
		call       func(*amt.Power) error
	}{
		{use: "on", short: "Power the host on", call: (*amt.Power).TurnOn},
		{use: "off", short: "Power the host off", call: (*amt.Power).TurnOff},
		{use: "reset", short: "Power cycle the host", call: (*amt.Power).Reset},
		{use: "toggle", short: "Turn an on host off or an off host on", call: (*amt.Power).Toggle},
	}

	for _, tr := range transitions {
		cmd.AddCommand(&cobra.Command{
			Use:   tr.use,
			Short: tr.short,
			Args:  cobra.NoArgs,
			RunE: c.run(func(d *amt.Device, _ []string) error {
				return tr.call(d.Power)
			}),
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set CODE",
		Short: "Request a raw CIM power state code",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(d *amt.Device, args []string) error {
			code, err := atoi("power state", args[0])
			if err != nil {
				return err
			}

			return d.Power.RequestPowerStateChange(code)
		}),
	})

	return cmd
}

func (c *cli) kvmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kvm",
		Short: "Configure KVM redirection",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show KVM settings",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			enabled, err := d.KVM.Enabled()
			if err != nil {
				return err
			}

			ports, err := d.KVM.EnabledPorts()
			if err != nil {
				return err
			}

			screen, err := d.KVM.DefaultScreen()
			if err != nil {
				return err
			}

			optIn, err := d.KVM.OptInTimeout()
			if err != nil {
				return err
			}

			session, err := d.KVM.SessionTimeout()
			if err != nil {
				return err
			}

			c.printf("enabled: %t\nports: %v\ndefault screen: %d\nopt-in timeout: %ds\nsession timeout: %dm\n",
				enabled, ports.Enabled(), screen, optIn, session)

			return nil
		}),
	})

	for use, on := range map[string]bool{"enable": true, "disable": false} {
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: strings.ToUpper(use[:1]) + use[1:] + " KVM redirection",
			Args:  cobra.NoArgs,
			RunE: c.run(func(d *amt.Device, _ []string) error {
				return d.KVM.SetEnabled(on)
			}),
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "ports [PORT...]",
		Short: "Enable exactly the given ports (5900, 16994, 16995)",
		RunE: c.run(func(d *amt.Device, args []string) error {
			ports := make([]int, 0, len(args))

			for _, a := range args {
				port, err := atoi("port", a)
				if err != nil {
					return err
				}

				ports = append(ports, port)
			}

			return d.KVM.SetEnabledPorts(ports...)
		}),
	})

	settings := []struct {
		use, short string
		set        func(*amt.KVM, int) error
	}{
		{use: "screen N", short: "Set the default screen", set: (*amt.KVM).SetDefaultScreen},
		{use: "session-timeout MINUTES", short: "Set the session timeout", set: (*amt.KVM).SetSessionTimeout},
		{use: "optin-timeout SECONDS", short: "Set the user opt-in timeout; 0 disables opt-in", set: (*amt.KVM).SetOptInTimeout},
	}

	for _, s := range settings {
		cmd.AddCommand(&cobra.Command{
			Use:   s.use,
			Short: s.short,
			Args:  cobra.ExactArgs(1),
			RunE: c.run(func(d *amt.Device, args []string) error {
				n, err := atoi(strings.Fields(s.use)[0], args[0])
				if err != nil {
					return err
				}

				return s.set(d.KVM, n)
			}),
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "password",
		Short: "Set the RFB password for standard VNC viewers",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			password, err := readPasswordFunc("RFB password: ")
			if err != nil {
				return err
			}

			return d.KVM.SetPassword(password)
		}),
	})

	return cmd
}

func (c *cli) redirectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redirection",
		Short: "Configure Serial-over-LAN and IDE redirection",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the enabled redirection features",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			features, err := d.Redirection.EnabledFeatures()
			if err != nil {
				return err
			}

			c.printf("%v\n", features.Enabled())

			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [FEATURE...]",
		Short: "Enable exactly the given features (SoL, IDER)",
		RunE: c.run(func(d *amt.Device, args []string) error {
			features := make([]amt.Feature, 0, len(args))
			for _, a := range args {
				features = append(features, amt.Feature(a))
			}

			return d.Redirection.SetEnabledFeatures(features...)
		}),
	})

	return cmd
}

// parseTTL accepts whole seconds or a Go duration such as "5m".
func parseTTL(s string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}

	ttl, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: TTL %q is neither seconds nor a duration", amt.ErrValidation, s)
	}

	return ttl, nil
}

func (c *cli) optInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optin",
		Short: "Manage user consent",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the consent requirement, code TTL and session state",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			required, err := d.OptIn.Required()
			if err != nil {
				return err
			}

			ttl, err := d.OptIn.CodeTTL()
			if err != nil {
				return err
			}

			state, err := d.OptIn.State()
			if err != nil {
				return err
			}

			level, _ := required.Selected()
			c.printf("required: %s\ncode ttl: %s\nstate: %s\n", level, ttl, state)

			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "required LEVEL",
		Short: "Set the consent requirement (None, KVM, All)",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(d *amt.Device, args []string) error {
			return d.OptIn.SetRequired(amt.ConsentLevel(args[0]))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ttl TTL",
		Short: "Set how long a consent code stays valid (60s to 900s)",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(d *amt.Device, args []string) error {
			ttl, err := parseTTL(args[0])
			if err != nil {
				return err
			}

			return d.OptIn.SetCodeTTL(ttl)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Display a consent code on the host",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			return d.OptIn.StartOptIn()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel",
		Short: "Cancel the consent session",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			return d.OptIn.CancelOptIn()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "code CODE",
		Short: "Send the consent code shown on the host",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(d *amt.Device, args []string) error {
			code, err := atoi("opt-in code", args[0])
			if err != nil {
				return err
			}

			return d.OptIn.SendOptInCode(code)
		}),
	})

	return cmd
}

func (c *cli) bootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boot",
		Short: "Choose the next boot medium",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "media",
		Short: "List the supported boot media",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			media, err := d.Boot.SupportedMedia()
			if err != nil {
				return err
			}

			for _, m := range media {
				c.printf("%s\n", m)
			}

			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set MEDIUM",
		Short: "Boot from MEDIUM next time",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(d *amt.Device, args []string) error {
			return d.Boot.SetMedium(args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Deactivate the AMT boot configuration",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			return d.Boot.SetBootConfigRole(false)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Show the settings applied on the next boot",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			config, err := d.Boot.Config()
			if err != nil {
				return err
			}

			return c.printJSON(config)
		}),
	})

	return cmd
}

func (c *cli) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Dump every known resource as JSON",
		Args:  cobra.NoArgs,
		RunE: c.run(func(d *amt.Device, _ []string) error {
			report, err := d.Dump()
			if err != nil {
				return err
			}

			out, err := report.JSON()
			if err != nil {
				return err
			}

			_, err = c.out.Write(out)

			return err
		}),
	}
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get RESOURCE",
		Short: "Read a singleton resource",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(d *amt.Device, args []string) error {
			node, err := d.GetResource(args[0])
			if err != nil {
				return err
			}

			return c.printJSON(node)
		}),
	}
}

func (c *cli) enumerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enumerate RESOURCE",
		Short: "List every instance of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(d *amt.Device, args []string) error {
			nodes, err := d.EnumerateResource(args[0])
			if err != nil {
				return err
			}

			return c.printJSON(nodes)
		}),
	}
}
