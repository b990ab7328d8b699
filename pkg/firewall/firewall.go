// Package firewall registers inbound Windows firewall rules through netsh.
package firewall

import (
	"context"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/terrariactl/terrariactl/pkg/oscore"
)

var ErrUnsupportedOS = errors.New("firewall rules are only managed on Windows")

type Rule struct {
	Name     string
	Protocol string
	Port     int
}

// EnsureRule creates an inbound allow rule when a rule with the same name
// does not exist yet.
func EnsureRule(ctx context.Context, rule Rule) error {
	if runtime.GOOS != "windows" {
		return ErrUnsupportedOS
	}

	exists, err := ruleExists(ctx, rule.Name)
	if err != nil {
		return errors.WithMessage(err, "failed to query firewall rules")
	}
	if exists {
		return nil
	}

	err = oscore.ExecCommand(
		ctx,
		"netsh",
		"advfirewall",
		"firewall",
		"add",
		"rule",
		"name="+rule.Name,
		"dir=in",
		"action=allow",
		"protocol="+rule.Protocol,
		"localport="+strconv.Itoa(rule.Port),
	)
	if err != nil {
		return errors.WithMessage(err, "failed to execute netsh command")
	}

	return nil
}

func ruleExists(ctx context.Context, name string) (bool, error) {
	out, err := oscore.ExecCommandWithOutput(
		ctx,
		"netsh", "advfirewall", "firewall", "show", "rule", "name="+name,
	)
	if err != nil {
		// netsh exits non-zero when no rule matches.
		return false, nil //nolint:nilerr
	}

	return !strings.Contains(out, "No rules match"), nil
}
