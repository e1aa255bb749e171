// Package aria provides a typed client for the VMware Aria Automation
// IaaS API (vRA 8.x).
package aria

import (
	"context"
)

// Authenticator establishes an API session. Login must be called once
// before any other operation; an authentication failure aborts the run.
type Authenticator interface {
	// Login performs the two-step token exchange and stores the bearer
	// token for subsequent calls.
	Login(ctx context.Context) error
}

// FabricReader lists fabric-level inventory used for name resolution.
type FabricReader interface {
	// Regions lists all cloud account regions.
	Regions(ctx context.Context) ([]Region, error)

	// FabricImages lists all VM templates across all regions.
	FabricImages(ctx context.Context) ([]FabricImage, error)

	// FabricComputes lists compute clusters and resource pools.
	FabricComputes(ctx context.Context) ([]FabricCompute, error)
}

// ProfileManager reads and writes flavor and image profiles.
//
// Both create endpoints upsert by name+region and replace the full mapping
// for that region in one call; there is no incremental API.
type ProfileManager interface {
	FlavorProfiles(ctx context.Context) ([]FlavorProfile, error)

	// CreateFlavorProfile writes the complete flavor set of one region.
	// Returns the identifier of the created or replaced profile.
	CreateFlavorProfile(ctx context.Context, req FlavorProfileRequest) (string, error)

	ImageProfiles(ctx context.Context) ([]ImageProfile, error)

	// CreateImageProfile writes the complete image set of one region.
	CreateImageProfile(ctx context.Context, req ImageProfileRequest) (string, error)
}

// StorageProfileManager reads and writes storage profiles.
type StorageProfileManager interface {
	StorageProfiles(ctx context.Context) ([]StorageProfile, error)

	// StorageProfile fetches the full document of a single profile.
	// The list endpoint omits fields that a full-replace update must
	// preserve, so updates are always preceded by this call.
	StorageProfile(ctx context.Context, id string) (*StorageProfile, error)

	CreateStorageProfile(ctx context.Context, req StorageProfileRequest) (string, error)

	// UpdateStorageProfile performs a full-document PUT. The request must
	// carry every field of the existing document; omitted fields are
	// silently deleted by the backend.
	UpdateStorageProfile(ctx context.Context, id string, req StorageProfileRequest) error
}

// TagUpdater reads taggable resources and patches their capability tags.
// All tag fields are full-replace: the payload is the complete desired set.
type TagUpdater interface {
	CloudZones(ctx context.Context) ([]CloudZone, error)
	NetworkProfiles(ctx context.Context) ([]NetworkProfile, error)

	// UpdateCloudZoneTags replaces a zone's tags. The zone's current name
	// must be supplied; the endpoint rejects payloads without it.
	UpdateCloudZoneTags(ctx context.Context, id, name string, tags []Tag) error

	UpdateNetworkProfileTags(ctx context.Context, id string, tags []Tag) error
	UpdateFabricComputeTags(ctx context.Context, id string, tags []Tag) error
}

// Gateway is the full surface the reconciliation engine depends on.
type Gateway interface {
	FabricReader
	ProfileManager
	StorageProfileManager
	TagUpdater
}
