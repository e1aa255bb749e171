package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

func tagsConfig(tags config.TagsConfig) *config.Config {
	return &config.Config{Tags: tags}
}

func TestTagPlanner_CloudZonePatchResendsName(t *testing.T) {
	mock := &aria.MockClient{
		CloudZonesFunc: func(ctx context.Context) ([]aria.CloudZone, error) {
			return []aria.CloudZone{{ID: "zone-1", Name: "east-zone"}}, nil
		},
	}
	cfg := tagsConfig(config.TagsConfig{
		CloudZones: []config.TagAssignment{
			{Name: "east-zone", Tags: []config.TagSpec{{Key: "env", Value: "prod"}}},
		},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewTagPlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	require.Len(t, mock.CloudZonePatches, 1)
	assert.Equal(t, "east-zone", mock.CloudZonePatches[0].Name)
	assert.Equal(t, []aria.Tag{{Key: "env", Value: "prod"}}, mock.CloudZonePatches[0].Tags)
	assert.Equal(t, []string{"zone-1"}, mock.PatchedResourceIDs)
}

// Tag comparison is set equality: order and duplicates must not trigger a
// write.
func TestTagPlanner_SetEqualityIsOrderIndependent(t *testing.T) {
	mock := &aria.MockClient{
		NetworkProfilesFunc: func(ctx context.Context) ([]aria.NetworkProfile, error) {
			return []aria.NetworkProfile{{ID: "np-1", Name: "dmz", Tags: []aria.Tag{
				{Key: "env", Value: "prod"},
				{Key: "tier", Value: "web"},
			}}}, nil
		},
	}
	cfg := tagsConfig(config.TagsConfig{
		NetworkProfiles: []config.TagAssignment{
			{Name: "dmz", Tags: []config.TagSpec{
				{Key: "tier", Value: "web"},
				{Key: "env", Value: "prod"},
				{Key: "env", Value: "prod"},
			}},
		},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewTagPlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	assert.Zero(t, mock.WriteCount())
	assert.Equal(t, 1, rep.Summary().Converged)
}

// A run that converged everything must issue zero writes when re-run.
func TestTagPlanner_SecondRunIsIdempotent(t *testing.T) {
	current := []aria.Tag{}
	mock := &aria.MockClient{
		FabricComputesFunc: func(ctx context.Context) ([]aria.FabricCompute, error) {
			return []aria.FabricCompute{{ID: "fc-1", Name: "cluster-a", Tags: current}}, nil
		},
		UpdateFabricComputeTagsFunc: func(ctx context.Context, id string, tags []aria.Tag) error {
			current = tags
			return nil
		},
	}
	cfg := tagsConfig(config.TagsConfig{
		Compute: []config.TagAssignment{
			{Name: "cluster-a", Tags: []config.TagSpec{{Key: "gpu", Value: "true"}}},
		},
	})

	first := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewTagPlanner(mock, cfg)})
	require.NoError(t, first.Err())
	require.Equal(t, 1, mock.WriteCount())

	second := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewTagPlanner(mock, cfg)})
	require.NoError(t, second.Err())
	assert.Equal(t, 1, mock.WriteCount(), "second run must not write")
	assert.Equal(t, 1, second.Summary().Converged)
}

func TestTagPlanner_AbsentResourceIsSkipped(t *testing.T) {
	mock := &aria.MockClient{
		CloudZonesFunc: func(ctx context.Context) ([]aria.CloudZone, error) {
			return []aria.CloudZone{{ID: "zone-1", Name: "east-zone"}}, nil
		},
	}
	cfg := tagsConfig(config.TagsConfig{
		CloudZones: []config.TagAssignment{
			{Name: "ghost-zone", Tags: []config.TagSpec{{Key: "env", Value: "prod"}}},
		},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewTagPlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	assert.Zero(t, mock.WriteCount())
	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, StatusSkipped, rep.Outcomes[0].Status)
}

// A listing failure on one taggable kind must not stop the others.
func TestTagPlanner_ListingFailureIsolatedPerKind(t *testing.T) {
	mock := &aria.MockClient{
		CloudZonesFunc: func(ctx context.Context) ([]aria.CloudZone, error) {
			return nil, assert.AnError
		},
		NetworkProfilesFunc: func(ctx context.Context) ([]aria.NetworkProfile, error) {
			return []aria.NetworkProfile{{ID: "np-1", Name: "dmz"}}, nil
		},
	}
	cfg := tagsConfig(config.TagsConfig{
		CloudZones: []config.TagAssignment{
			{Name: "east-zone", Tags: []config.TagSpec{{Key: "env", Value: "prod"}}},
		},
		NetworkProfiles: []config.TagAssignment{
			{Name: "dmz", Tags: []config.TagSpec{{Key: "tier", Value: "web"}}},
		},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewTagPlanner(mock, cfg)})

	require.Error(t, rep.Err())
	require.Len(t, rep.KindFailures, 1)
	assert.Equal(t, KindCloudZone, rep.KindFailures[0].Kind)
	require.Len(t, mock.NetworkProfilePatches, 1)
	assert.Equal(t, []aria.Tag{{Key: "tier", Value: "web"}}, mock.NetworkProfilePatches[0].Tags)
}

// The patch always carries the full desired set, replacing whatever the
// resource had.
func TestTagPlanner_PatchCarriesFullDesiredSet(t *testing.T) {
	mock := &aria.MockClient{
		FabricComputesFunc: func(ctx context.Context) ([]aria.FabricCompute, error) {
			return []aria.FabricCompute{{ID: "fc-1", Name: "cluster-a", Tags: []aria.Tag{
				{Key: "stale", Value: "yes"},
			}}}, nil
		},
	}
	cfg := tagsConfig(config.TagsConfig{
		Compute: []config.TagAssignment{
			{Name: "cluster-a", Tags: []config.TagSpec{
				{Key: "gpu", Value: "true"},
				{Key: "env", Value: "prod"},
			}},
		},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewTagPlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	require.Len(t, mock.FabricComputePatches, 1)
	assert.ElementsMatch(t, []aria.Tag{
		{Key: "gpu", Value: "true"},
		{Key: "env", Value: "prod"},
	}, mock.FabricComputePatches[0].Tags)
}
