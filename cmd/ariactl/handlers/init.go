package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/essentialco/ariactl/internal/config"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	runWizard        = config.RunWizard
	writeStarterYAML = config.WriteStarterYAML
	statFile         = os.Stat
)

// Init runs the interactive wizard and writes a starter spec file. An
// existing file is never overwritten.
func Init(ctx context.Context, outputPath string) error {
	if _, err := statFile(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it or choose another path with --output", outputPath)
	}

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard aborted: %w", err)
	}

	if err := writeStarterYAML(result, outputPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintf(stdout, "Wrote %s\n", outputPath)
	fmt.Fprintf(stdout, "Fill in the flavors, images and tags sections, then preview with:\n")
	fmt.Fprintf(stdout, "  ariactl apply --all --dry-run -c %s\n", outputPath)
	return nil
}
