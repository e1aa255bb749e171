package handlers

import (
	"bytes"
	"context"
	"testing"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

// saveAndRestoreFactories snapshots the injectable factory variables and
// restores them when the test finishes.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origLoadConfigFile := loadConfigFile
	origNewClient := newClient
	origStdout := stdout
	origRunWizard := runWizard
	origWriteStarterYAML := writeStarterYAML
	origStatFile := statFile

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		newClient = origNewClient
		stdout = origStdout
		runWizard = origRunWizard
		writeStarterYAML = origWriteStarterYAML
		statFile = origStatFile
	})
}

// captureStdout redirects handler output into a buffer.
func captureStdout() *bytes.Buffer {
	var buf bytes.Buffer
	stdout = &buf
	return &buf
}

// loginClient wraps MockClient with an Authenticator for handler tests.
type loginClient struct {
	*aria.MockClient
	loginErr error
	loggedIn bool
}

func (c *loginClient) Login(ctx context.Context) error {
	c.loggedIn = true
	return c.loginErr
}

func injectClient(mock *aria.MockClient, loginErr error) *loginClient {
	client := &loginClient{MockClient: mock, loginErr: loginErr}
	newClient = func(cfg *config.Config) Client { return client }
	return client
}

func injectConfig(cfg *config.Config) {
	loadConfigFile = func(path string) (*config.Config, error) { return cfg, nil }
}
