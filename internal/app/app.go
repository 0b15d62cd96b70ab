// Package app wires configuration, logging and transport into an AMT device
// and exposes it as a command tree.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/device-management-toolkit/go-wsman-messages/v2/pkg/wsman/client"
	"golang.org/x/term"

	"github.com/device-management-toolkit/amtctl/config"
	"github.com/device-management-toolkit/amtctl/internal/amt"
	"github.com/device-management-toolkit/amtctl/internal/wsman"
	"github.com/device-management-toolkit/amtctl/pkg/logger"
)

var Version = "DEVELOPMENT"

// ErrNoPassword is returned when no password is configured and stdin is not
// a terminal to prompt on.
var ErrNoPassword = errors.New("no password configured and stdin is not a terminal")

// PasswordFunc supplies a secret for prompt, typically by asking the user.
type PasswordFunc func(prompt string) (string, error)

// Function pointers for better testability.
var (
	newTargetFunc = func(cp client.Parameters) wsman.Poster {
		return client.NewWsman(cp)
	}
	readPasswordFunc PasswordFunc = promptPassword
)

// parameters maps the AMT section of the configuration onto the transport
// parameters.
func parameters(cfg config.AMT, password string) client.Parameters {
	return client.Parameters{
		Target:            cfg.Host,
		Username:          cfg.Username,
		Password:          password,
		UseDigest:         cfg.UseDigest,
		UseTLS:            cfg.UseTLS(),
		SelfSignedAllowed: cfg.SelfSignedAllowed,
		PinnedCert:        cfg.PinnedCert,
		LogAMTMessages:    cfg.LogAMTMessages,
	}
}

// Connect builds the device described by cfg. Without a configured password
// the user is asked for one.
func Connect(cfg *config.Config, log logger.Interface) (*amt.Device, error) {
	password := cfg.Password
	if password == "" {
		var err error

		password, err = readPasswordFunc(fmt.Sprintf("AMT password for %s@%s: ", cfg.Username, cfg.Host))
		if err != nil {
			return nil, fmt.Errorf("app - Connect - password: %w", err)
		}
	}

	target := newTargetFunc(parameters(cfg.AMT, password))
	transport := wsman.NewHTTPTransport(target, cfg.Endpoint(), log)
	device := amt.NewDevice(wsman.NewClient(transport, log), log)

	if cfg.DumpRequests {
		device.SetDebug(true)
	}

	log.Debug("app - Connect - %s", cfg.Endpoint())

	return device, nil
}

func promptPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoPassword
	}

	fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", err
	}

	return string(secret), nil
}
