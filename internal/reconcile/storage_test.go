package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essentialco/ariactl/internal/aria"
	"github.com/essentialco/ariactl/internal/config"
)

func storageConfig(specs ...config.StorageProfileSpec) *config.Config {
	return &config.Config{Tags: config.TagsConfig{StorageProfiles: specs}}
}

func storageMock(profiles []aria.StorageProfile, full map[string]*aria.StorageProfile) *aria.MockClient {
	return &aria.MockClient{
		StorageProfilesFunc: func(ctx context.Context) ([]aria.StorageProfile, error) {
			return profiles, nil
		},
		StorageProfileFunc: func(ctx context.Context, id string) (*aria.StorageProfile, error) {
			if p, ok := full[id]; ok {
				return p, nil
			}
			return nil, &aria.APIError{StatusCode: 404, Message: "not found"}
		},
	}
}

// An update must re-send every field of the existing document. Fields the
// spec never mentions, including unknown driver members inside the disk
// property maps, have to survive the round trip.
func TestStoragePlanner_FullDocumentReplacePreservesFields(t *testing.T) {
	existing := &aria.StorageProfile{
		ID:                 "sp-1",
		Name:               "gold",
		Description:        "gold tier",
		DefaultItem:        true,
		SupportsEncryption: true,
		Tags:               []aria.Tag{{Key: "tier", Value: "silver"}},
		DiskProperties: map[string]any{
			"provisioningType": "thin",
			"sharesLevel":      "high",
		},
		DiskTargetProperties: map[string]any{"datastoreId": "ds-9"},
		ComputeHostID:        "fc-7",
		Links: aria.Links{
			"region": aria.Href{Href: "/iaas/api/regions/region-1"},
		},
	}
	mock := storageMock(
		[]aria.StorageProfile{{ID: "sp-1", Name: "gold"}},
		map[string]*aria.StorageProfile{"sp-1": existing},
	)
	cfg := storageConfig(config.StorageProfileSpec{
		Name: "gold",
		Tags: []config.TagSpec{{Key: "tier", Value: "gold"}},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	require.Len(t, mock.StorageUpdateRequests, 1)
	assert.Equal(t, []string{"sp-1"}, mock.StorageUpdateIDs)

	req := mock.StorageUpdateRequests[0]
	assert.Equal(t, "gold", req.Name)
	assert.Equal(t, "gold tier", req.Description)
	assert.True(t, req.DefaultItem)
	assert.True(t, req.SupportsEncryption)
	assert.Equal(t, "high", req.DiskProperties["sharesLevel"])
	assert.Equal(t, "ds-9", req.DiskTargetProperties["datastoreId"])
	assert.Equal(t, "fc-7", req.ComputeHostID)
	assert.Equal(t, "region-1", req.RegionID)
	assert.Equal(t, []aria.Tag{{Key: "tier", Value: "gold"}}, req.Tags)
}

// Some deployments return the region as a top-level regionId with no
// region link; the full-replace PUT must still carry it.
func TestStoragePlanner_UpdateUsesTopLevelRegionID(t *testing.T) {
	existing := &aria.StorageProfile{
		ID:     "sp-1",
		Name:   "gold",
		Tags:   []aria.Tag{{Key: "tier", Value: "silver"}},
		Region: "region-7",
	}
	mock := storageMock(
		[]aria.StorageProfile{{ID: "sp-1", Name: "gold"}},
		map[string]*aria.StorageProfile{"sp-1": existing},
	)
	cfg := storageConfig(config.StorageProfileSpec{
		Name: "gold",
		Tags: []config.TagSpec{{Key: "tier", Value: "gold"}},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	require.Len(t, mock.StorageUpdateRequests, 1)
	assert.Equal(t, "region-7", mock.StorageUpdateRequests[0].RegionID)
}

func TestStoragePlanner_ConvergedProfileIssuesNoWrite(t *testing.T) {
	existing := &aria.StorageProfile{
		ID:   "sp-1",
		Name: "gold",
		Tags: []aria.Tag{{Key: "tier", Value: "gold"}},
	}
	mock := storageMock(
		[]aria.StorageProfile{{ID: "sp-1", Name: "gold"}},
		map[string]*aria.StorageProfile{"sp-1": existing},
	)
	cfg := storageConfig(config.StorageProfileSpec{
		Name: "gold",
		Tags: []config.TagSpec{{Key: "tier", Value: "gold"}},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	assert.Zero(t, mock.WriteCount())
	assert.Equal(t, 1, rep.Summary().Converged)
}

// Matching tags alone are not enough when the spec binds the profile to a
// compute cluster the existing document does not reference.
func TestStoragePlanner_ComputeBindingMismatchForcesUpdate(t *testing.T) {
	existing := &aria.StorageProfile{
		ID:            "sp-1",
		Name:          "gold",
		Tags:          []aria.Tag{{Key: "tier", Value: "gold"}},
		ComputeHostID: "fc-old",
	}
	mock := storageMock(
		[]aria.StorageProfile{{ID: "sp-1", Name: "gold"}},
		map[string]*aria.StorageProfile{"sp-1": existing},
	)
	mock.FabricComputesFunc = func(ctx context.Context) ([]aria.FabricCompute, error) {
		return []aria.FabricCompute{{ID: "fc-new", Name: "cluster-b"}}, nil
	}
	cfg := storageConfig(config.StorageProfileSpec{
		Name:    "gold",
		Tags:    []config.TagSpec{{Key: "tier", Value: "gold"}},
		Compute: "cluster-b",
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	require.Len(t, mock.StorageUpdateRequests, 1)
	assert.Equal(t, "fc-new", mock.StorageUpdateRequests[0].ComputeHostID)
}

func TestStoragePlanner_AbsentWithoutCreateIsSkipped(t *testing.T) {
	mock := storageMock(nil, nil)
	cfg := storageConfig(config.StorageProfileSpec{
		Name: "ghost",
		Tags: []config.TagSpec{{Key: "tier", Value: "gold"}},
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	assert.Zero(t, mock.WriteCount())
	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, StatusSkipped, rep.Outcomes[0].Status)
	assert.Contains(t, rep.Outcomes[0].Detail, "create: true")
}

func TestStoragePlanner_CreateWhenOptedIn(t *testing.T) {
	mock := storageMock(nil, nil)
	mock.RegionsFunc = func(ctx context.Context) ([]aria.Region, error) {
		return []aria.Region{{ID: "region-1", Name: "dc-east"}}, nil
	}
	mock.FabricComputesFunc = func(ctx context.Context) ([]aria.FabricCompute, error) {
		return []aria.FabricCompute{{ID: "fc-1", Name: "cluster-a"}}, nil
	}
	cfg := storageConfig(config.StorageProfileSpec{
		Name:             "bronze",
		Tags:             []config.TagSpec{{Key: "tier", Value: "bronze"}},
		Create:           true,
		Region:           "dc-east",
		Description:      "bronze storage profile",
		ProvisioningType: "thick",
		Default:          true,
		Compute:          "cluster-a",
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	require.Len(t, mock.StorageCreateRequests, 1)

	req := mock.StorageCreateRequests[0]
	assert.Equal(t, "bronze", req.Name)
	assert.Equal(t, "region-1", req.RegionID)
	assert.Equal(t, "thick", req.DiskProperties["provisioningType"])
	assert.True(t, req.DefaultItem)
	assert.Equal(t, "fc-1", req.ComputeHostID)
}

func TestStoragePlanner_CreateWithUnknownRegionIsSkipped(t *testing.T) {
	mock := storageMock(nil, nil)
	mock.RegionsFunc = func(ctx context.Context) ([]aria.Region, error) {
		return []aria.Region{{ID: "region-1", Name: "dc-east"}}, nil
	}
	cfg := storageConfig(config.StorageProfileSpec{
		Name:   "bronze",
		Create: true,
		Region: "dc-ghost",
	})

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err())
	assert.Zero(t, mock.WriteCount())
	require.Len(t, rep.Outcomes, 1)
	assert.Equal(t, StatusSkipped, rep.Outcomes[0].Status)
	assert.Contains(t, rep.Outcomes[0].Detail, "dc-ghost")
}

func TestStoragePlanner_FullDocumentFetchFailureIsPerResource(t *testing.T) {
	mock := storageMock(
		[]aria.StorageProfile{
			{ID: "sp-1", Name: "gold"},
			{ID: "sp-2", Name: "silver"},
		},
		map[string]*aria.StorageProfile{
			"sp-2": {ID: "sp-2", Name: "silver", Tags: []aria.Tag{{Key: "tier", Value: "silver"}}},
		},
	)
	cfg := storageConfig(
		config.StorageProfileSpec{Name: "gold", Tags: []config.TagSpec{{Key: "tier", Value: "gold"}}},
		config.StorageProfileSpec{Name: "silver", Tags: []config.TagSpec{{Key: "tier", Value: "silver"}}},
	)

	rep := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(mock, cfg)})

	require.NoError(t, rep.Err(), "per-resource fetch failure must not abort the kind")
	sum := rep.Summary()
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Converged)
}

// Simulate and apply share the decision path: the planned operations of a
// dry run must match the writes an apply issues, one to one.
func TestStoragePlanner_DryRunParity(t *testing.T) {
	full := map[string]*aria.StorageProfile{
		"sp-1": {ID: "sp-1", Name: "gold", Tags: []aria.Tag{{Key: "tier", Value: "silver"}}},
	}
	newMock := func() *aria.MockClient {
		m := storageMock([]aria.StorageProfile{{ID: "sp-1", Name: "gold"}}, full)
		m.RegionsFunc = func(ctx context.Context) ([]aria.Region, error) {
			return []aria.Region{{ID: "region-1", Name: "dc-east"}}, nil
		}
		return m
	}
	cfg := storageConfig(
		config.StorageProfileSpec{Name: "gold", Tags: []config.TagSpec{{Key: "tier", Value: "gold"}}},
		config.StorageProfileSpec{Name: "bronze", Create: true, Region: "dc-east"},
	)

	simMock := newMock()
	sim := NewExecutor(ModeSimulate).Run(context.Background(), []Planner{NewStoragePlanner(simMock, cfg)})
	require.NoError(t, sim.Err())
	assert.Zero(t, simMock.WriteCount())

	planned := 0
	for _, o := range sim.Outcomes {
		if o.Status == StatusPlanned {
			planned++
		}
	}

	applyMock := newMock()
	apply := NewExecutor(ModeApply).Run(context.Background(), []Planner{NewStoragePlanner(applyMock, cfg)})
	require.NoError(t, apply.Err())
	assert.Equal(t, planned, applyMock.WriteCount())
	assert.Equal(t, sim.Summary(), apply.Summary())
}
