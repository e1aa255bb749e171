package config

import (
	"fmt"
	"os"
	"strings"
)

// starterTemplate is the skeleton written by the init wizard. Resource
// sections are commented examples so a fresh config validates and a first
// dry run is safe.
const starterTemplate = `# ariactl desired infrastructure specification
aria:
  host: %s
  username: %s
  password: %s
  domain: %s
  verify_ssl: %t

regions:
%s
# VM sizes. The whole set is written per region in one call.
#flavors:
#  - name: small
#    cpuCount: 1
#    memoryMB: 1024
#  - name: large
#    cpuCount: 4
#    memoryMB: 4096

# Image mappings: logical name -> template per region.
#images:
#  - name: ubuntu
#    templates:
#      dc01: ubuntu-22-template

# Capability tags per resource kind.
#tags:
#  cloud_zones:
#    - name: zone-a
#      tags:
#        - key: env
#          value: prod
#  network_profiles: []
#  compute: []
#  storage_profiles:
#    - name: fast-storage
#      create: true
#      region: dc01
#      provisioning_type: thin
#      tags:
#        - key: tier
#          value: gold
`

// WriteStarterYAML renders the starter config for the wizard answers and
// writes it to path.
func WriteStarterYAML(result *WizardResult, path string) error {
	var regions strings.Builder
	for _, name := range result.Regions {
		fmt.Fprintf(&regions, "  - name: %s\n", name)
	}

	content := fmt.Sprintf(starterTemplate,
		result.Host, result.Username, result.Password, result.Domain,
		result.VerifySSL, regions.String())

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
