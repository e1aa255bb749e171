package reconcile

import "github.com/essentialco/ariactl/internal/aria"

// Lookup tables mapping human-readable names to backend identifiers.
// Each index is built once from a backend listing and never mutated;
// planners receive them by value.

// RegionIndex resolves region names to regions.
type RegionIndex struct {
	byName map[string]aria.Region
}

// NewRegionIndex builds an index from a region listing.
func NewRegionIndex(regions []aria.Region) RegionIndex {
	byName := make(map[string]aria.Region, len(regions))
	for _, r := range regions {
		byName[r.Name] = r
	}
	return RegionIndex{byName: byName}
}

// Lookup resolves a single region name.
func (i RegionIndex) Lookup(name string) (aria.Region, bool) {
	r, ok := i.byName[name]
	return r, ok
}

// Resolve maps the given names to regions. Unresolved names are returned
// separately; they are warnings, not failures — the caller decides whether
// the dependent resource is skipped.
func (i RegionIndex) Resolve(names []string) (map[string]aria.Region, []string) {
	resolved := make(map[string]aria.Region, len(names))
	var unresolved []string
	for _, name := range names {
		if r, ok := i.byName[name]; ok {
			resolved[name] = r
		} else {
			unresolved = append(unresolved, name)
		}
	}
	return resolved, unresolved
}

// imageKey is the composite natural key of a fabric image. A template name
// alone is ambiguous: the same name may exist as different images in
// different regions.
type imageKey struct {
	regionID string
	name     string
}

// FabricImageIndex resolves (region, template name) pairs to fabric images.
type FabricImageIndex struct {
	byKey map[imageKey]aria.FabricImage
}

// NewFabricImageIndex builds a composite-keyed index from an image listing.
// Images without a region link are unaddressable and left out.
func NewFabricImageIndex(images []aria.FabricImage) FabricImageIndex {
	byKey := make(map[imageKey]aria.FabricImage, len(images))
	for _, img := range images {
		regionID := img.RegionID()
		if img.Name == "" || img.ID == "" || regionID == "" {
			continue
		}
		byKey[imageKey{regionID: regionID, name: img.Name}] = img
	}
	return FabricImageIndex{byKey: byKey}
}

// Lookup resolves a template name within one region.
func (i FabricImageIndex) Lookup(regionID, templateName string) (aria.FabricImage, bool) {
	img, ok := i.byKey[imageKey{regionID: regionID, name: templateName}]
	return img, ok
}

// Len returns the number of addressable images in the index.
func (i FabricImageIndex) Len() int { return len(i.byKey) }

// ComputeIndex resolves compute cluster names to fabric computes.
type ComputeIndex struct {
	byName map[string]aria.FabricCompute
}

// NewComputeIndex builds an index from a fabric compute listing.
func NewComputeIndex(computes []aria.FabricCompute) ComputeIndex {
	byName := make(map[string]aria.FabricCompute, len(computes))
	for _, c := range computes {
		byName[c.Name] = c
	}
	return ComputeIndex{byName: byName}
}

// Lookup resolves a compute cluster name.
func (i ComputeIndex) Lookup(name string) (aria.FabricCompute, bool) {
	c, ok := i.byName[name]
	return c, ok
}
