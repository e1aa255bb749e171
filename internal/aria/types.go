package aria

import (
	"encoding/json"
	"strings"
)

// Tag is a key/value capability tag as the IaaS API represents it.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Href is a single hypermedia link.
type Href struct {
	Href string `json:"href"`
}

// Links is the `_links` block returned on most IaaS API documents.
type Links map[string]Href

// RegionID extracts the region identifier from the `region` link.
// Returns the empty string when the document carries no region link.
func (l Links) RegionID() string {
	href := l["region"].Href
	if i := strings.LastIndex(href, "/regions/"); i >= 0 {
		return href[i+len("/regions/"):]
	}
	return ""
}

// Next returns the href of the next result page, if any.
func (l Links) Next() (string, bool) {
	href := l["next"].Href
	return href, href != ""
}

// page is the envelope wrapping every paginated list response.
type page struct {
	Content []json.RawMessage `json:"content"`
	Links   Links             `json:"_links"`
}

// Region is a cloud account region.
type Region struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ExternalRegionID string `json:"externalRegionId"`
	CloudAccountID   string `json:"cloudAccountId"`
}

// FabricImage is a concrete VM template belonging to exactly one region.
// The region is only exposed through the document's `_links`.
type FabricImage struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ExternalRegionID string `json:"externalRegionId"`
	OSFamily         string `json:"osFamily"`
	Links            Links  `json:"_links"`
}

// RegionID returns the identifier of the region this image lives in.
func (f FabricImage) RegionID() string { return f.Links.RegionID() }

// FabricCompute is a compute cluster or resource pool discovered on the fabric.
type FabricCompute struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tags []Tag  `json:"tags"`
}

// CloudZone is a taggable placement zone.
type CloudZone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tags []Tag  `json:"tags"`
}

// NetworkProfile is a taggable network profile.
type NetworkProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tags []Tag  `json:"tags"`
}

// StorageProfile is the full storage profile document. Updates against the
// API are full-replace, so every field present on the existing document must
// survive a round trip through this struct. Disk properties are kept as raw
// maps because the API returns driver-specific members we must not drop.
type StorageProfile struct {
	ID                   string         `json:"id,omitempty"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	DefaultItem          bool           `json:"defaultItem"`
	SupportsEncryption   bool           `json:"supportsEncryption"`
	Tags                 []Tag          `json:"tags"`
	DiskProperties       map[string]any `json:"diskProperties,omitempty"`
	DiskTargetProperties map[string]any `json:"diskTargetProperties,omitempty"`
	ComputeHostID        string         `json:"computeHostId,omitempty"`
	ExternalRegionID     string         `json:"externalRegionId,omitempty"`

	// Region is the top-level regionId some deployments return; others
	// expose the region only through `_links`.
	Region string `json:"regionId,omitempty"`
	Links  Links  `json:"_links,omitempty"`
}

// RegionID returns the profile's region, preferring the top-level field
// and falling back to the `_links` entry.
func (s StorageProfile) RegionID() string {
	if s.Region != "" {
		return s.Region
	}
	return s.Links.RegionID()
}

// FlavorSpec is one size definition inside a flavor mapping.
type FlavorSpec struct {
	CPUCount   int `json:"cpuCount"`
	MemoryInMB int `json:"memoryInMB"`
}

// FlavorProfile is the summary document of an existing flavor profile.
type FlavorProfile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ExternalRegionID string `json:"externalRegionId"`
	FlavorMappings   struct {
		Mapping map[string]FlavorSpec `json:"mapping"`
	} `json:"flavorMappings"`
}

// ImageRef references a fabric image by identifier. The API rejects
// template names here; only resolved fabric image ids are accepted.
type ImageRef struct {
	ID string `json:"id"`
}

// ImageProfile is the summary document of an existing image profile.
type ImageProfile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ExternalRegionID string `json:"externalRegionId"`
	ImageMappings    struct {
		Mapping map[string]ImageRef `json:"mapping"`
	} `json:"imageMappings"`
}

// FlavorProfileRequest creates or replaces the flavor profile of one region.
// The endpoint upserts by name+region and replaces the entire mapping, so
// the request must always carry the complete desired flavor set.
type FlavorProfileRequest struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	RegionID      string                `json:"regionId"`
	FlavorMapping map[string]FlavorSpec `json:"flavorMapping"`
}

// ImageProfileRequest creates or replaces the image profile of one region.
type ImageProfileRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	RegionID     string              `json:"regionId"`
	ImageMapping map[string]ImageRef `json:"imageMapping"`
}

// StorageProfileRequest is the outgoing storage profile document, used both
// for POST (create) and PUT (full replace). RegionID is flattened here
// because writes take `regionId` while reads expose the region via links.
type StorageProfileRequest struct {
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	DefaultItem          bool           `json:"defaultItem"`
	SupportsEncryption   bool           `json:"supportsEncryption"`
	Tags                 []Tag          `json:"tags"`
	DiskProperties       map[string]any `json:"diskProperties,omitempty"`
	DiskTargetProperties map[string]any `json:"diskTargetProperties,omitempty"`
	ComputeHostID        string         `json:"computeHostId,omitempty"`
	RegionID             string         `json:"regionId"`
}

// cloudZonePatch updates tags on a cloud zone. The zone endpoint requires
// the current name to be re-sent even though it does not change.
type cloudZonePatch struct {
	Name string `json:"name"`
	Tags []Tag  `json:"tags"`
}

// tagsPatch updates tags on resources whose PATCH endpoint takes tags only.
type tagsPatch struct {
	Tags []Tag `json:"tags"`
}
