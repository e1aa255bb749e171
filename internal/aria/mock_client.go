package aria

import (
	"context"
	"fmt"
)

// MockClient is a func-field implementation of Gateway for tests. Calls to
// unset funcs return empty results so tests only wire what they exercise.
// Write funcs additionally record their requests for assertions.
type MockClient struct {
	RegionsFunc        func(ctx context.Context) ([]Region, error)
	FabricImagesFunc   func(ctx context.Context) ([]FabricImage, error)
	FabricComputesFunc func(ctx context.Context) ([]FabricCompute, error)

	FlavorProfilesFunc      func(ctx context.Context) ([]FlavorProfile, error)
	CreateFlavorProfileFunc func(ctx context.Context, req FlavorProfileRequest) (string, error)
	ImageProfilesFunc       func(ctx context.Context) ([]ImageProfile, error)
	CreateImageProfileFunc  func(ctx context.Context, req ImageProfileRequest) (string, error)

	StorageProfilesFunc      func(ctx context.Context) ([]StorageProfile, error)
	StorageProfileFunc       func(ctx context.Context, id string) (*StorageProfile, error)
	CreateStorageProfileFunc func(ctx context.Context, req StorageProfileRequest) (string, error)
	UpdateStorageProfileFunc func(ctx context.Context, id string, req StorageProfileRequest) error

	CloudZonesFunc               func(ctx context.Context) ([]CloudZone, error)
	NetworkProfilesFunc          func(ctx context.Context) ([]NetworkProfile, error)
	UpdateCloudZoneTagsFunc      func(ctx context.Context, id, name string, tags []Tag) error
	UpdateNetworkProfileTagsFunc func(ctx context.Context, id string, tags []Tag) error
	UpdateFabricComputeTagsFunc  func(ctx context.Context, id string, tags []Tag) error

	// Recorded write calls, appended in issue order.
	FlavorProfileRequests  []FlavorProfileRequest
	ImageProfileRequests   []ImageProfileRequest
	StorageCreateRequests  []StorageProfileRequest
	StorageUpdateRequests  []StorageProfileRequest
	StorageUpdateIDs       []string
	CloudZonePatches       []cloudZonePatch
	NetworkProfilePatches  []tagsPatch
	FabricComputePatches   []tagsPatch
	PatchedResourceIDs     []string
}

var _ Gateway = (*MockClient)(nil)

func (m *MockClient) Regions(ctx context.Context) ([]Region, error) {
	if m.RegionsFunc != nil {
		return m.RegionsFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) FabricImages(ctx context.Context) ([]FabricImage, error) {
	if m.FabricImagesFunc != nil {
		return m.FabricImagesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) FabricComputes(ctx context.Context) ([]FabricCompute, error) {
	if m.FabricComputesFunc != nil {
		return m.FabricComputesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) FlavorProfiles(ctx context.Context) ([]FlavorProfile, error) {
	if m.FlavorProfilesFunc != nil {
		return m.FlavorProfilesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) CreateFlavorProfile(ctx context.Context, req FlavorProfileRequest) (string, error) {
	m.FlavorProfileRequests = append(m.FlavorProfileRequests, req)
	if m.CreateFlavorProfileFunc != nil {
		return m.CreateFlavorProfileFunc(ctx, req)
	}
	return fmt.Sprintf("flavor-profile-%d", len(m.FlavorProfileRequests)), nil
}

func (m *MockClient) ImageProfiles(ctx context.Context) ([]ImageProfile, error) {
	if m.ImageProfilesFunc != nil {
		return m.ImageProfilesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) CreateImageProfile(ctx context.Context, req ImageProfileRequest) (string, error) {
	m.ImageProfileRequests = append(m.ImageProfileRequests, req)
	if m.CreateImageProfileFunc != nil {
		return m.CreateImageProfileFunc(ctx, req)
	}
	return fmt.Sprintf("image-profile-%d", len(m.ImageProfileRequests)), nil
}

func (m *MockClient) StorageProfiles(ctx context.Context) ([]StorageProfile, error) {
	if m.StorageProfilesFunc != nil {
		return m.StorageProfilesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) StorageProfile(ctx context.Context, id string) (*StorageProfile, error) {
	if m.StorageProfileFunc != nil {
		return m.StorageProfileFunc(ctx, id)
	}
	return nil, &APIError{StatusCode: 404, Message: "not found"}
}

func (m *MockClient) CreateStorageProfile(ctx context.Context, req StorageProfileRequest) (string, error) {
	m.StorageCreateRequests = append(m.StorageCreateRequests, req)
	if m.CreateStorageProfileFunc != nil {
		return m.CreateStorageProfileFunc(ctx, req)
	}
	return fmt.Sprintf("storage-profile-%d", len(m.StorageCreateRequests)), nil
}

func (m *MockClient) UpdateStorageProfile(ctx context.Context, id string, req StorageProfileRequest) error {
	m.StorageUpdateIDs = append(m.StorageUpdateIDs, id)
	m.StorageUpdateRequests = append(m.StorageUpdateRequests, req)
	if m.UpdateStorageProfileFunc != nil {
		return m.UpdateStorageProfileFunc(ctx, id, req)
	}
	return nil
}

func (m *MockClient) CloudZones(ctx context.Context) ([]CloudZone, error) {
	if m.CloudZonesFunc != nil {
		return m.CloudZonesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) NetworkProfiles(ctx context.Context) ([]NetworkProfile, error) {
	if m.NetworkProfilesFunc != nil {
		return m.NetworkProfilesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) UpdateCloudZoneTags(ctx context.Context, id, name string, tags []Tag) error {
	m.CloudZonePatches = append(m.CloudZonePatches, cloudZonePatch{Name: name, Tags: tags})
	m.PatchedResourceIDs = append(m.PatchedResourceIDs, id)
	if m.UpdateCloudZoneTagsFunc != nil {
		return m.UpdateCloudZoneTagsFunc(ctx, id, name, tags)
	}
	return nil
}

func (m *MockClient) UpdateNetworkProfileTags(ctx context.Context, id string, tags []Tag) error {
	m.NetworkProfilePatches = append(m.NetworkProfilePatches, tagsPatch{Tags: tags})
	m.PatchedResourceIDs = append(m.PatchedResourceIDs, id)
	if m.UpdateNetworkProfileTagsFunc != nil {
		return m.UpdateNetworkProfileTagsFunc(ctx, id, tags)
	}
	return nil
}

func (m *MockClient) UpdateFabricComputeTags(ctx context.Context, id string, tags []Tag) error {
	m.FabricComputePatches = append(m.FabricComputePatches, tagsPatch{Tags: tags})
	m.PatchedResourceIDs = append(m.PatchedResourceIDs, id)
	if m.UpdateFabricComputeTagsFunc != nil {
		return m.UpdateFabricComputeTagsFunc(ctx, id, tags)
	}
	return nil
}

// WriteCount returns the total number of write calls issued against the
// mock, across all resource kinds. Used by idempotency tests.
func (m *MockClient) WriteCount() int {
	return len(m.FlavorProfileRequests) +
		len(m.ImageProfileRequests) +
		len(m.StorageCreateRequests) +
		len(m.StorageUpdateRequests) +
		len(m.CloudZonePatches) +
		len(m.NetworkProfilePatches) +
		len(m.FabricComputePatches)
}
