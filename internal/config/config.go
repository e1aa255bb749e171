// Package config defines the desired infrastructure specification and
// methods for loading and validating it.
package config

import "fmt"

// Provisioning types accepted for storage profiles.
const (
	ProvisioningThin  = "thin"
	ProvisioningThick = "thick"
)

// Config is the desired infrastructure specification loaded from YAML.
type Config struct {
	Aria    AriaConfig  `mapstructure:"aria" yaml:"aria"`
	Regions []RegionRef `mapstructure:"regions" yaml:"regions"`

	FlavorProfileName        string             `mapstructure:"flavor_profile_name" yaml:"flavor_profile_name"`
	FlavorProfileDescription string             `mapstructure:"flavor_profile_description" yaml:"flavor_profile_description"`
	Flavors                  []FlavorDefinition `mapstructure:"flavors" yaml:"flavors"`

	ImageProfileName        string         `mapstructure:"image_profile_name" yaml:"image_profile_name"`
	ImageProfileDescription string         `mapstructure:"image_profile_description" yaml:"image_profile_description"`
	Images                  []ImageMapping `mapstructure:"images" yaml:"images"`

	Tags TagsConfig `mapstructure:"tags" yaml:"tags"`

	Timeouts Timeouts `mapstructure:"timeouts" yaml:"timeouts"`
}

// AriaConfig holds connection and authentication settings.
type AriaConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`

	// Domain is the identity source. Default: "System Domain".
	Domain string `mapstructure:"domain" yaml:"domain"`

	// VerifySSL controls TLS certificate verification. Default: true.
	VerifySSL *bool `mapstructure:"verify_ssl" yaml:"verify_ssl"`
}

// VerifyTLS reports whether certificate verification is enabled.
func (a AriaConfig) VerifyTLS() bool {
	return a.VerifySSL == nil || *a.VerifySSL
}

// RegionRef names a cloud account region in the desired spec.
type RegionRef struct {
	Name string `mapstructure:"name" yaml:"name"`
}

// FlavorDefinition is one VM size. Flavors are not independently
// addressable on the backend; the whole set is written per region.
type FlavorDefinition struct {
	Name     string `mapstructure:"name" yaml:"name"`
	CPUCount int    `mapstructure:"cpuCount" yaml:"cpuCount"`
	MemoryMB int    `mapstructure:"memoryMB" yaml:"memoryMB"`
}

// ImageMapping maps one logical image name to a template per region.
type ImageMapping struct {
	Name string `mapstructure:"name" yaml:"name"`

	// Templates maps region name to vCenter template name. The same
	// template name may exist as different images in different regions.
	Templates map[string]string `mapstructure:"templates" yaml:"templates"`
}

// TagSpec is one desired key/value tag.
type TagSpec struct {
	Key   string `mapstructure:"key" yaml:"key"`
	Value string `mapstructure:"value" yaml:"value"`
}

func (t TagSpec) String() string { return fmt.Sprintf("%s:%s", t.Key, t.Value) }

// TagAssignment assigns a desired tag set to a named resource.
type TagAssignment struct {
	Name string    `mapstructure:"name" yaml:"name"`
	Tags []TagSpec `mapstructure:"tags" yaml:"tags"`
}

// StorageProfileSpec is the desired state of one storage profile.
type StorageProfileSpec struct {
	Name string    `mapstructure:"name" yaml:"name"`
	Tags []TagSpec `mapstructure:"tags" yaml:"tags"`

	// Create allows the profile to be created when absent. Without it an
	// absent profile is reported as skipped, never silently created.
	Create bool `mapstructure:"create" yaml:"create"`

	// Region is required when Create is set.
	Region      string `mapstructure:"region" yaml:"region"`
	Description string `mapstructure:"description" yaml:"description"`

	// ProvisioningType is thin or thick. Default: thin.
	ProvisioningType string `mapstructure:"provisioning_type" yaml:"provisioning_type"`

	// Default marks the profile as the region's default item.
	Default bool `mapstructure:"default" yaml:"default"`

	// Compute optionally binds the profile to a named compute cluster.
	Compute string `mapstructure:"compute" yaml:"compute"`
}

// TagsConfig groups desired tag assignments per taggable resource kind.
type TagsConfig struct {
	CloudZones      []TagAssignment      `mapstructure:"cloud_zones" yaml:"cloud_zones"`
	NetworkProfiles []TagAssignment      `mapstructure:"network_profiles" yaml:"network_profiles"`
	Compute         []TagAssignment      `mapstructure:"compute" yaml:"compute"`
	StorageProfiles []StorageProfileSpec `mapstructure:"storage_profiles" yaml:"storage_profiles"`
}

// RegionNames returns the region names of the desired spec in order.
func (c *Config) RegionNames() []string {
	names := make([]string, 0, len(c.Regions))
	for _, r := range c.Regions {
		names = append(names, r.Name)
	}
	return names
}

// applyDefaults fills derivable fields left empty in the YAML.
func (c *Config) applyDefaults() {
	if c.Aria.Domain == "" {
		c.Aria.Domain = "System Domain"
	}
	if c.FlavorProfileName == "" {
		c.FlavorProfileName = "vSphere-flavor-profile"
	}
	if c.FlavorProfileDescription == "" {
		c.FlavorProfileDescription = fmt.Sprintf("Flavor profile with %d size options", len(c.Flavors))
	}
	if c.ImageProfileName == "" {
		c.ImageProfileName = "vSphere-image-profile"
	}
	if c.ImageProfileDescription == "" {
		c.ImageProfileDescription = "Image profile for VM deployments"
	}
	for i := range c.Tags.StorageProfiles {
		sp := &c.Tags.StorageProfiles[i]
		if sp.ProvisioningType == "" {
			sp.ProvisioningType = ProvisioningThin
		}
		if sp.Description == "" {
			sp.Description = fmt.Sprintf("%s storage profile", sp.Name)
		}
	}
	c.Timeouts.applyDefaults()
}
