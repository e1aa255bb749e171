package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

func applyTestConfig() *config.Config {
	return &config.Config{
		Aria:              config.AriaConfig{Host: "vra.example.com", Username: "u", Password: "p"},
		Regions:           []config.RegionRef{{Name: "dc-east"}},
		FlavorProfileName: "vSphere-flavor-profile",
		Flavors: []config.FlavorDefinition{
			{Name: "small", CPUCount: 2, MemoryMB: 4096},
		},
	}
}

func regionsOnlyMock() *aria.MockClient {
	return &aria.MockClient{
		RegionsFunc: func(ctx context.Context) ([]aria.Region, error) {
			return []aria.Region{{ID: "region-1", Name: "dc-east"}}, nil
		},
	}
}

func TestApply_MissingSpecFileSuggestsInit(t *testing.T) {
	saveAndRestoreFactories(t)
	captureStdout()

	err := Apply(context.Background(), "/nonexistent/ariactl.yaml", ApplyOptions{Flavors: true, DryRun: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ariactl init")
}

func TestApply_LoginFailureAbortsRun(t *testing.T) {
	saveAndRestoreFactories(t)
	captureStdout()
	injectConfig(applyTestConfig())
	client := injectClient(regionsOnlyMock(), errors.New("invalid credentials"))

	err := Apply(context.Background(), "", ApplyOptions{Flavors: true, DryRun: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.True(t, client.loggedIn)
	assert.Zero(t, client.WriteCount())
}

func TestApply_DryRunWritesNothing(t *testing.T) {
	saveAndRestoreFactories(t)
	out := captureStdout()
	injectConfig(applyTestConfig())
	client := injectClient(regionsOnlyMock(), nil)

	err := Apply(context.Background(), "", ApplyOptions{Flavors: true, DryRun: true})

	require.NoError(t, err)
	assert.Zero(t, client.WriteCount())
	assert.Contains(t, out.String(), "Dry run")
	assert.Contains(t, out.String(), "flavor-profile")
}

func TestApply_ExecuteIssuesWrites(t *testing.T) {
	saveAndRestoreFactories(t)
	out := captureStdout()
	injectConfig(applyTestConfig())
	client := injectClient(regionsOnlyMock(), nil)

	err := Apply(context.Background(), "", ApplyOptions{Flavors: true})

	require.NoError(t, err)
	assert.Equal(t, 1, client.WriteCount())
	assert.Contains(t, out.String(), "Summary:")
}

func TestApply_KindAbortExitsNonZero(t *testing.T) {
	saveAndRestoreFactories(t)
	captureStdout()
	injectConfig(applyTestConfig())
	mock := &aria.MockClient{
		RegionsFunc: func(ctx context.Context) ([]aria.Region, error) {
			return nil, errors.New("server error")
		},
	}
	injectClient(mock, nil)

	err := Apply(context.Background(), "", ApplyOptions{Flavors: true})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flavor-profile")
}

// A write rejected by the backend is reported but does not fail the run.
func TestApply_ResourceWriteFailureKeepsExitZero(t *testing.T) {
	saveAndRestoreFactories(t)
	out := captureStdout()
	injectConfig(applyTestConfig())
	mock := regionsOnlyMock()
	mock.CreateFlavorProfileFunc = func(ctx context.Context, req aria.FlavorProfileRequest) (string, error) {
		return "", errors.New("rejected")
	}
	injectClient(mock, nil)

	err := Apply(context.Background(), "", ApplyOptions{Flavors: true})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "1 failed")
}
