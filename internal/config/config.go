// Package config loads a host's engine_config.yaml, validates it against
// schemas/engine_config.schema.json, and turns it into a world.Config plus
// the grid the engine needs to boot.
package config

import (
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/jpiabrantes/territories/internal/sim/world"
	"github.com/jpiabrantes/territories/internal/sim/worldmap"
)

// File is the on-disk shape of engine_config.yaml. Field names follow the
// schema's snake_case, not world.Config's Go-case.
type File struct {
	ID               string  `yaml:"id"`
	NGenes           int     `yaml:"n_genes"`
	NAlleles         int     `yaml:"n_alleles"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	MaxAgents        int     `yaml:"max_agents"`
	NRoles           int     `yaml:"n_roles"`
	MinEpLength      int     `yaml:"min_ep_length"`
	MaxEpLength      int     `yaml:"max_ep_length"`
	ExtinctionReward float64 `yaml:"extinction_reward"`
	RewardGrowthRate bool    `yaml:"reward_growth_rate"`
	MapName          string  `yaml:"map_name"`
	MapDir           string  `yaml:"map_dir"`
	Seed             int64   `yaml:"seed"`
}

// Load reads path as YAML, validates it against the engine config schema,
// and returns both the decoded world.Config and its grid: all-soil if
// map_name is empty, otherwise is_soil_{width}_{height}.bin read from
// map_dir (the map_name value itself is not part of the file name). Any
// failure here is a fatal init error for the host.
func Load(schemaPath, path string) (world.Config, *worldmap.Grid, error) {
	var zero world.Config

	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return zero, nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	// jsonschema validates against the JSON type model (map[string]any with
	// float64 numbers), not YAML's native map[any]any/int types.
	doc, err = toJSONTypes(doc)
	if err != nil {
		return zero, nil, fmt.Errorf("config: normalizing %s: %w", path, err)
	}

	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return zero, nil, fmt.Errorf("config: compiling %s: %w", schemaPath, err)
	}
	if err := schema.Validate(doc); err != nil {
		return zero, nil, fmt.Errorf("config: %s failed schema validation: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return zero, nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	cfg := world.Config{
		ID:               f.ID,
		NGenes:           f.NGenes,
		NAlleles:         f.NAlleles,
		Width:            f.Width,
		Height:           f.Height,
		MaxAgents:        f.MaxAgents,
		NRoles:           f.NRoles,
		MinEpLength:      f.MinEpLength,
		MaxEpLength:      f.MaxEpLength,
		ExtinctionReward: f.ExtinctionReward,
		RewardGrowthRate: f.RewardGrowthRate,
		MapName:          f.MapName,
		Seed:             f.Seed,
	}
	if err := cfg.Validate(); err != nil {
		return zero, nil, fmt.Errorf("config: %s: %w", path, err)
	}

	var grid *worldmap.Grid
	if f.MapName == "" {
		grid = worldmap.Blank(f.Width, f.Height)
	} else {
		dir := f.MapDir
		if dir == "" {
			dir = "."
		}
		grid, err = worldmap.Load(dir, f.Width, f.Height)
		if err != nil {
			return zero, nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	return cfg, grid, nil
}

// toJSONTypes recursively rewrites yaml.v3's decoded map[string]interface{}
// (already string-keyed, unlike yaml.v2) into values jsonschema accepts,
// converting int/int64 to float64 so numeric schema checks see what a
// genuine JSON decode would have produced.
func toJSONTypes(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			conv, err := toJSONTypes(e)
			if err != nil {
				return nil, err
			}
			out[k] = conv
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			conv, err := toJSONTypes(e)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return val, nil
	}
}
