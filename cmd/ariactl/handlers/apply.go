// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
	"github.com/essentialco/ariactl/internal/reconcile"
	"github.com/essentialco/ariactl/internal/ui"
)

const defaultSpecFile = "ariactl.yaml"

// Client is the full backend surface the handlers depend on.
type Client interface {
	aria.Authenticator
	aria.Gateway
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the spec from file.
	loadConfigFile = config.LoadFile

	// newClient creates the backend client from connection settings.
	newClient = func(cfg *config.Config) Client {
		return aria.NewRealClient(aria.Options{
			Host:               cfg.Aria.Host,
			Username:           cfg.Aria.Username,
			Password:           cfg.Aria.Password,
			Domain:             cfg.Aria.Domain,
			InsecureSkipVerify: !cfg.Aria.VerifyTLS(),
			ReadTimeout:        cfg.Timeouts.Read,
			WriteTimeout:       cfg.Timeouts.Write,
		})
	}

	// stdout is the report destination (for testing injection).
	stdout io.Writer = os.Stdout
)

// ApplyOptions selects the resource kinds one apply run reconciles.
type ApplyOptions struct {
	DryRun  bool
	Flavors bool
	Images  bool
	Storage bool
	Tags    bool
	All     bool
}

// Apply loads the spec, authenticates and converges the selected resource
// kinds in a fixed order: flavor profiles, image profiles, storage
// profiles, capability tags.
//
// The returned error is non-nil only for invalid specs, authentication
// failures and kind-level aborts. Per-resource write failures are reported
// in the summary and do not fail the run; re-running the tool is the retry
// mechanism.
func Apply(ctx context.Context, configPath string, opts ApplyOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	if err := client.Login(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	var planners []reconcile.Planner
	if opts.Flavors {
		planners = append(planners, reconcile.NewFlavorPlanner(client, cfg))
	}
	if opts.Images {
		planners = append(planners, reconcile.NewImagePlanner(client, cfg))
	}
	if opts.Storage {
		planners = append(planners, reconcile.NewStoragePlanner(client, cfg))
	}
	if opts.Tags {
		planners = append(planners, reconcile.NewTagPlanner(client, cfg))
	}

	mode := reconcile.ModeApply
	if opts.DryRun {
		mode = reconcile.ModeSimulate
	}

	rep := reconcile.NewExecutor(mode).Run(ctx, planners)
	ui.NewRenderer(stdout).Render(rep)
	return rep.Err()
}

// loadConfig loads and validates the spec file, defaulting to
// ariactl.yaml in the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = defaultSpecFile
	}
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec %s: %w\nRun 'ariactl init' to create one", configPath, err)
	}
	return cfg, nil
}
