package configloader

import "github.com/yaklabco/mdpreview/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional toggles: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.FoldKeys != "" {
		result.FoldKeys = override.FoldKeys
	}
	if override.MaxInputBytes != 0 {
		result.MaxInputBytes = override.MaxInputBytes
	}
	if override.Title != "" {
		result.Title = override.Title
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.SyntaxHighlight != nil {
		result.SyntaxHighlight = override.SyntaxHighlight
	}
	if override.CodeFolding != nil {
		result.CodeFolding = override.CodeFolding
	}

	// Plain booleans can only be switched on by a later layer.
	if override.DetectLanguage {
		result.DetectLanguage = true
	}
	if override.Force {
		result.Force = true
	}
	if override.Export.Fragment {
		result.Export.Fragment = true
	}

	if override.Export.OutDir != "" {
		result.Export.OutDir = override.Export.OutDir
	}
	if override.Preview.Addr != "" {
		result.Preview.Addr = override.Preview.Addr
	}
	if override.Preview.PollInterval != 0 {
		result.Preview.PollInterval = override.Preview.PollInterval
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
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
