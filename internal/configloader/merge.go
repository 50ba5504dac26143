package configloader

import "github.com/yaklabco/ustree/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Strings: override wins when non-empty
//   - Pointers: override wins when non-nil, so an explicit false sticks
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Positions != nil {
		result.Positions = config.Bool(*override.Positions)
	}
	if override.DetectLang != nil {
		result.DetectLang = config.Bool(*override.DetectLang)
	}
	if override.NodeIDs != nil {
		result.NodeIDs = config.Bool(*override.NodeIDs)
	}
	if override.Indent != nil {
		result.Indent = config.Int(*override.Indent)
	}

	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Selector != "" {
		result.Selector = override.Selector
	}
	if override.Model != "" {
		result.Model = override.Model
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
