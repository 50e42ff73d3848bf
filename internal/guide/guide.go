// Package guide defines the subdomain table that drives the documentation
// guide report: named areas of a repository, each mapping documentation and
// code paths via glob patterns.
package guide

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Domain is one entry in the guide: a stable id, a human title, the category
// heading it is grouped under, and glob patterns selecting its documentation
// and code paths.
type Domain struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Docs     []string `yaml:"docs"`
	Code     []string `yaml:"code"`
}

type table struct {
	Domains []Domain `yaml:"domains"`
}

// Load reads a domain table from a YAML file. Entries missing an id or title
// are rejected so a typo in the config surfaces immediately.
func Load(path string) ([]Domain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading guide config: %w", err)
	}
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing guide config %s: %w", path, err)
	}
	for i, d := range t.Domains {
		if d.ID == "" || d.Title == "" {
			return nil, fmt.Errorf("guide config %s: domain %d needs both id and title", path, i)
		}
	}
	return t.Domains, nil
}

// Default returns the built-in domain table, modeled on the subsystem layout
// of large systems repositories.
func Default() []Domain {
	return []Domain{
		{
			ID:       "core",
			Title:    "Core Kernel",
			Category: "CORE SUBSYSTEMS",
			Docs:     []string{"Documentation/core-api/**", "Documentation/kernel-hacking/**"},
			Code:     []string{"kernel/**", "init/**", "lib/**"},
		},
		{
			ID:       "mm",
			Title:    "Memory Management",
			Category: "CORE SUBSYSTEMS",
			Docs:     []string{"Documentation/mm/**", "Documentation/admin-guide/mm/**"},
			Code:     []string{"mm/**"},
		},
		{
			ID:       "networking",
			Title:    "Networking",
			Category: "CORE SUBSYSTEMS",
			Docs:     []string{"Documentation/networking/**"},
			Code:     []string{"net/**", "drivers/net/**"},
		},
		{
			ID:       "filesystems",
			Title:    "Filesystems and VFS",
			Category: "FILESYSTEMS",
			Docs:     []string{"Documentation/filesystems/**"},
			Code:     []string{"fs/**"},
		},
		{
			ID:       "drivers",
			Title:    "Device Drivers",
			Category: "DRIVERS",
			Docs:     []string{"Documentation/driver-api/**", "Documentation/devicetree/**"},
			Code:     []string{"drivers/**", "sound/**"},
		},
		{
			ID:       "arch",
			Title:    "Architecture Support",
			Category: "ARCHITECTURE",
			Docs:     []string{"Documentation/arch/**"},
			Code:     []string{"arch/**"},
		},
		{
			ID:       "security",
			Title:    "Security and Crypto",
			Category: "SECURITY",
			Docs:     []string{"Documentation/security/**", "Documentation/crypto/**"},
			Code:     []string{"security/**", "crypto/**"},
		},
		{
			ID:       "tools",
			Title:    "Tooling and Scripts",
			Category: "TOOLING",
			Docs:     []string{"Documentation/dev-tools/**"},
			Code:     []string{"tools/**", "scripts/**"},
		},
	}
}
