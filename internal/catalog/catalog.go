// Copyright (c) 2025 ToeiRei
// Sentinel - SSH server configuration editor
// This source code is licensed under the MIT license found in the LICENSE file.

// package catalog carries short descriptions of common sshd_config
// keywords, shown next to the selected directive in the UI. It is
// purely descriptive; Sentinel never validates values against it, and
// keywords missing from the catalog are still fully editable.
package catalog

import (
	"embed"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed descriptions.yaml
var catalogFS embed.FS

var (
	once         sync.Once
	descriptions map[string]string // lowercased keyword -> description
	displayNames map[string]string // lowercased keyword -> canonical spelling
)

func load() {
	once.Do(func() {
		descriptions = map[string]string{}
		displayNames = map[string]string{}

		data, err := catalogFS.ReadFile("descriptions.yaml")
		if err != nil {
			return
		}
		var raw map[string]string
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return
		}
		for key, desc := range raw {
			lower := strings.ToLower(key)
			descriptions[lower] = desc
			displayNames[lower] = key
		}
	})
}

// Describe returns the description for a keyword, matched
// case-insensitively. The second return value reports whether the
// keyword is known to the catalog.
func Describe(key string) (string, bool) {
	load()
	desc, ok := descriptions[strings.ToLower(key)]
	return desc, ok
}

// CanonicalName returns the documented spelling of a keyword (e.g.
// "permitrootlogin" -> "PermitRootLogin"). Unknown keywords come back
// unchanged.
func CanonicalName(key string) string {
	load()
	if name, ok := displayNames[strings.ToLower(key)]; ok {
		return name
	}
	return key
}

// Keys returns all cataloged keywords in their canonical spelling,
// sorted alphabetically.
func Keys() []string {
	load()
	out := make([]string, 0, len(displayNames))
	for _, name := range displayNames {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
