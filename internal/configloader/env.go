package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdpreview/pkg/config"
)

// envVarPrefix is the prefix for all mdpreview environment variables.
const envVarPrefix = "MDPREVIEW_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeDuration
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"THEME":            {"theme", envTypeString, "Theme preset: github, dark, or minimal"},
	"ENGINE":           {"engine", envTypeString, "Renderer: builtin or goldmark"},
	"FLAVOR":           {"flavor", envTypeString, "Goldmark flavor: commonmark or gfm"},
	"FOLD_KEYS":        {"fold_keys", envTypeString, "Code block ids: content or positional"},
	"MAX_INPUT_BYTES":  {"max_input_bytes", envTypeInt, "Truncate input above this size (0 = no cap)"},
	"SYNTAX_HIGHLIGHT": {"enable_syntax_highlight", envTypeBool, "Highlight code blocks: true or false"},
	"CODE_FOLDING":     {"enable_code_folding", envTypeBool, "Show fold controls: true or false"},
	"DETECT_LANGUAGE":  {"detect_language", envTypeBool, "Guess untagged code languages: true or false"},
	"TITLE":            {"title", envTypeString, "HTML document title"},
	"EXTENSIONS":       {"extensions", envTypeSlice, "Comma-separated Markdown file extensions"},
	"IGNORE":           {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"OUT_DIR":          {"export.out_dir", envTypeString, "Export output directory"},
	"FRAGMENT":         {"export.fragment", envTypeBool, "Export body fragments: true or false"},
	"ADDR":             {"preview.addr", envTypeString, "Preview server listen address"},
	"POLL_INTERVAL":    {"preview.poll_interval", envTypeDuration, "Preview reload check interval (e.g. 500ms)"},
	"JOBS":             {"jobs", envTypeInt, "Number of parallel export workers (0 = auto)"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDPREVIEW_ (e.g., MDPREVIEW_THEME).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	case envTypeDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", envVar, value)
		}
		return setDurationField(cfg, mapping.field, d)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "theme":
		cfg.Theme = value
	case "engine":
		cfg.Engine = config.Engine(value)
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "fold_keys":
		cfg.FoldKeys = value
	case "title":
		cfg.Title = value
	case "export.out_dir":
		cfg.Export.OutDir = value
	case "preview.addr":
		cfg.Preview.Addr = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "enable_syntax_highlight":
		cfg.SyntaxHighlight = config.Bool(value)
	case "enable_code_folding":
		cfg.CodeFolding = config.Bool(value)
	case "detect_language":
		cfg.DetectLanguage = value
	case "export.fragment":
		cfg.Export.Fragment = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_input_bytes":
		cfg.MaxInputBytes = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// setDurationField sets a duration field on the config by field path.
func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "preview.poll_interval":
		cfg.Preview.PollInterval = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
