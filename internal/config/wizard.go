package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the answers collected by the init wizard.
type WizardResult struct {
	Host      string
	Username  string
	Password  string
	Domain    string
	VerifySSL bool
	Regions   []string
}

// RunWizard collects connection settings and region names interactively.
// Resource sections (flavors, images, tags) are emitted as commented
// examples for the user to fill in.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Domain:    "System Domain",
		VerifySSL: true,
	}
	var regionList string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Aria Automation host").
				Description("Hostname of the vRA appliance, without scheme").
				Placeholder("vra.example.com").
				Value(&result.Host).
				Validate(required("host")),
			huh.NewInput().
				Title("Username").
				Value(&result.Username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&result.Password).
				Validate(required("password")),
			huh.NewInput().
				Title("Identity domain").
				Value(&result.Domain),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Region names").
				Description("Comma-separated cloud account region names").
				Placeholder("dc01, dc02").
				Value(&regionList).
				Validate(required("regions")),
			huh.NewConfirm().
				Title("Verify TLS certificates?").
				Value(&result.VerifySSL),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	for _, name := range strings.Split(regionList, ",") {
		if name = strings.TrimSpace(name); name != "" {
			result.Regions = append(result.Regions, name)
		}
	}
	return result, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
