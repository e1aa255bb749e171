package config

import "fmt"

// Validate checks the spec for structural errors. A failed validation
// aborts the whole run before any resource is processed.
func (c *Config) Validate() error {
	if err := c.validateAria(); err != nil {
		return err
	}
	if err := c.validateRegions(); err != nil {
		return err
	}
	if err := c.validateFlavors(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	return c.validateTags()
}

func (c *Config) validateAria() error {
	if c.Aria.Host == "" {
		return fmt.Errorf("aria.host is required")
	}
	if c.Aria.Username == "" {
		return fmt.Errorf("aria.username is required")
	}
	if c.Aria.Password == "" {
		return fmt.Errorf("aria.password is required")
	}
	return nil
}

func (c *Config) validateRegions() error {
	if len(c.Regions) == 0 {
		return fmt.Errorf("regions section is required and must name at least one region")
	}
	for i, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("regions[%d]: name is required", i)
		}
	}
	return nil
}

func (c *Config) validateFlavors() error {
	for i, f := range c.Flavors {
		if f.Name == "" {
			return fmt.Errorf("flavors[%d]: name is required", i)
		}
		if f.CPUCount <= 0 {
			return fmt.Errorf("flavor %q: cpuCount must be positive", f.Name)
		}
		if f.MemoryMB <= 0 {
			return fmt.Errorf("flavor %q: memoryMB must be positive", f.Name)
		}
	}
	return nil
}

func (c *Config) validateImages() error {
	for i, img := range c.Images {
		if img.Name == "" {
			return fmt.Errorf("images[%d]: name is required", i)
		}
		if len(img.Templates) == 0 {
			return fmt.Errorf("image %q: at least one region template is required", img.Name)
		}
	}
	return nil
}

func (c *Config) validateTags() error {
	for _, group := range []struct {
		section string
		entries []TagAssignment
	}{
		{"tags.cloud_zones", c.Tags.CloudZones},
		{"tags.network_profiles", c.Tags.NetworkProfiles},
		{"tags.compute", c.Tags.Compute},
	} {
		for i, entry := range group.entries {
			if entry.Name == "" {
				return fmt.Errorf("%s[%d]: name is required", group.section, i)
			}
			if err := validateTagSpecs(group.section, entry.Name, entry.Tags); err != nil {
				return err
			}
		}
	}

	for i, sp := range c.Tags.StorageProfiles {
		if sp.Name == "" {
			return fmt.Errorf("tags.storage_profiles[%d]: name is required", i)
		}
		if sp.Create && sp.Region == "" {
			return fmt.Errorf("storage profile %q: region is required when create is true", sp.Name)
		}
		if sp.ProvisioningType != ProvisioningThin && sp.ProvisioningType != ProvisioningThick {
			return fmt.Errorf("storage profile %q: provisioning_type must be %q or %q",
				sp.Name, ProvisioningThin, ProvisioningThick)
		}
		if err := validateTagSpecs("tags.storage_profiles", sp.Name, sp.Tags); err != nil {
			return err
		}
	}
	return nil
}

func validateTagSpecs(section, name string, tags []TagSpec) error {
	for _, t := range tags {
		if t.Key == "" {
			return fmt.Errorf("%s %q: tag key must not be empty", section, name)
		}
	}
	return nil
}
