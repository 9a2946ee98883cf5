// Package country holds the static per-country adjustment table: one
// multiplier and one development tier per country, loaded once at startup.
package country

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DevelopmentTier buckets national higher-education systems.
type DevelopmentTier string

const (
	TierWorldLeader  DevelopmentTier = "world_leader"
	TierStrong       DevelopmentTier = "strong"
	TierDeveloped    DevelopmentTier = "developed"
	TierEmerging     DevelopmentTier = "emerging"
	TierDeveloping   DevelopmentTier = "developing"
	TierUnclassified DevelopmentTier = "unclassified"
)

// Profile is one row of the country table.
type Profile struct {
	Key        string          `yaml:"key" json:"key"`
	Aliases    []string        `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Multiplier float64         `yaml:"multiplier" json:"multiplier"`
	Tier       DevelopmentTier `yaml:"tier" json:"tier"`
}

// DefaultProfile is returned for unrecognized countries: neutral
// multiplier, unclassified tier. Callers flag the degradation themselves.
func DefaultProfile(name string) Profile {
	return Profile{Key: strings.ToUpper(strings.TrimSpace(name)), Multiplier: 1.0, Tier: TierUnclassified}
}

// Table is the immutable in-memory country index.
type Table struct {
	byKey map[string]Profile
}

// NewTable builds and validates the index. Keys and aliases are matched
// case-insensitively.
func NewTable(profiles []Profile) (*Table, error) {
	t := &Table{byKey: make(map[string]Profile, len(profiles)*2)}
	for i, p := range profiles {
		if p.Key == "" {
			return nil, fmt.Errorf("country profile %d has empty key", i)
		}
		if p.Multiplier <= 0 {
			return nil, fmt.Errorf("country %s: multiplier %.2f must be positive", p.Key, p.Multiplier)
		}
		if p.Multiplier < 0.5 || p.Multiplier > 1.5 {
			return nil, fmt.Errorf("country %s: multiplier %.2f outside sane range [0.5, 1.5]", p.Key, p.Multiplier)
		}
		key := strings.ToUpper(strings.TrimSpace(p.Key))
		if _, dup := t.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate country key: %s", key)
		}
		t.byKey[key] = p
		for _, alias := range p.Aliases {
			a := strings.ToUpper(strings.TrimSpace(alias))
			if _, dup := t.byKey[a]; dup {
				return nil, fmt.Errorf("duplicate country alias: %s", a)
			}
			t.byKey[a] = p
		}
	}
	return t, nil
}

// Lookup resolves a country name to its profile. Exact key/alias matches
// are tried first, then a substring fallback ("United States of America"
// still finds "UNITED STATES"). The boolean is false when nothing matched
// and the neutral default profile is returned.
func (t *Table) Lookup(name string) (Profile, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return DefaultProfile(name), false
	}
	if p, ok := t.byKey[key]; ok {
		return p, true
	}
	// Substring fallback for forms like "United States of America". Short
	// keys are excluded so "US" cannot fire inside unrelated names, and
	// candidates are scanned in sorted order to keep the result stable.
	known := make([]string, 0, len(t.byKey))
	for k := range t.byKey {
		if len(k) >= 4 {
			known = append(known, k)
		}
	}
	sort.Strings(known)
	for _, k := range known {
		if strings.Contains(key, k) || (len(key) >= 4 && strings.Contains(k, key)) {
			return t.byKey[k], true
		}
	}
	return DefaultProfile(name), false
}

// Len returns the number of distinct profiles (aliases excluded).
func (t *Table) Len() int {
	seen := map[string]struct{}{}
	for _, p := range t.byKey {
		seen[p.Key] = struct{}{}
	}
	return len(seen)
}

type tableFile struct {
	Countries []Profile `yaml:"countries"`
}

// LoadTable reads the country table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read country table %s: %w", path, err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse country table: %w", err)
	}
	return NewTable(f.Countries)
}

// DefaultTable returns the built-in country table. Values are a seed set;
// deployments extend it through the YAML file.
func DefaultTable() *Table {
	t, err := NewTable(defaultProfiles())
	if err != nil {
		// defaults are compiled in; a failure here is a programming error
		panic(fmt.Sprintf("default country table invalid: %v", err))
	}
	return t
}

func defaultProfiles() []Profile {
	return []Profile{
		{Key: "USA", Aliases: []string{"US", "UNITED STATES"}, Multiplier: 1.2, Tier: TierWorldLeader},
		{Key: "UK", Aliases: []string{"UNITED KINGDOM", "GBR", "GREAT BRITAIN"}, Multiplier: 1.15, Tier: TierWorldLeader},
		{Key: "SWITZERLAND", Aliases: []string{"CHE"}, Multiplier: 1.15, Tier: TierStrong},
		{Key: "CANADA", Aliases: []string{"CAN"}, Multiplier: 1.1, Tier: TierStrong},
		{Key: "AUSTRALIA", Aliases: []string{"AUS"}, Multiplier: 1.1, Tier: TierStrong},
		{Key: "GERMANY", Aliases: []string{"DEU"}, Multiplier: 1.1, Tier: TierStrong},
		{Key: "SINGAPORE", Aliases: []string{"SGP"}, Multiplier: 1.1, Tier: TierEmerging},
		{Key: "HONG KONG", Aliases: []string{"HKG"}, Multiplier: 1.1, Tier: TierEmerging},
		{Key: "SWEDEN", Aliases: []string{"SWE"}, Multiplier: 1.05, Tier: TierStrong},
		{Key: "NETHERLANDS", Aliases: []string{"NLD"}, Multiplier: 1.05, Tier: TierStrong},
		{Key: "DENMARK", Aliases: []string{"DNK"}, Multiplier: 1.05, Tier: TierStrong},
		{Key: "FINLAND", Aliases: []string{"FIN"}, Multiplier: 1.05, Tier: TierStrong},
		{Key: "NORWAY", Aliases: []string{"NOR"}, Multiplier: 1.05, Tier: TierStrong},
		{Key: "JAPAN", Aliases: []string{"JPN"}, Multiplier: 1.05, Tier: TierEmerging},
		{Key: "SOUTH KOREA", Aliases: []string{"KOR", "KOREA"}, Multiplier: 1.05, Tier: TierEmerging},
		{Key: "FRANCE", Aliases: []string{"FRA"}, Multiplier: 1.0, Tier: TierDeveloped},
		{Key: "IRELAND", Aliases: []string{"IRL"}, Multiplier: 1.0, Tier: TierDeveloped},
		{Key: "NEW ZEALAND", Aliases: []string{"NZL"}, Multiplier: 1.0, Tier: TierDeveloped},
		{Key: "ITALY", Aliases: []string{"ITA"}, Multiplier: 0.95, Tier: TierDeveloped},
		{Key: "SPAIN", Aliases: []string{"ESP"}, Multiplier: 0.95, Tier: TierDeveloped},
		{Key: "PORTUGAL", Aliases: []string{"PRT"}, Multiplier: 0.9, Tier: TierDeveloped},
		{Key: "GREECE", Aliases: []string{"GRC"}, Multiplier: 0.9, Tier: TierDeveloped},
		{Key: "CHINA", Aliases: []string{"CHN"}, Multiplier: 0.9, Tier: TierEmerging},
		{Key: "INDIA", Aliases: []string{"IND"}, Multiplier: 0.85, Tier: TierDeveloping},
		{Key: "BRAZIL", Aliases: []string{"BRA"}, Multiplier: 0.85, Tier: TierDeveloping},
		{Key: "RUSSIA", Aliases: []string{"RUS"}, Multiplier: 0.85, Tier: TierDeveloping},
		{Key: "SOUTH AFRICA", Aliases: []string{"ZAF"}, Multiplier: 0.85, Tier: TierDeveloping},
		{Key: "MEXICO", Aliases: []string{"MEX"}, Multiplier: 0.85, Tier: TierDeveloping},
	}
}
