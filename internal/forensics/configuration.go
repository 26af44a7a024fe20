package forensics

import (
	"strings"
	"time"
)

const (
	configurationShowContentKeyConstant         = "show_content"
	configurationFormatKeyConstant              = "format"
	configurationIncludeOtherObjectsKeyConstant = "include_other_objects"
	configurationUnreachableKeyConstant         = "unreachable"
	configurationHighlightKeyConstant           = "highlight"
	configurationHighlightStyleKeyConstant      = "highlight_style"
	configurationCommandTimeoutKeyConstant      = "command_timeout"
	configurationStrictKeyConstant              = "strict"
	configurationKeySeparatorConstant           = "."
	defaultCommandTimeoutConstant               = 30 * time.Second
)

// CommandConfiguration captures persistent settings for the scrape report.
type CommandConfiguration struct {
	ShowContent         bool          `mapstructure:"show_content"`
	Format              string        `mapstructure:"format"`
	IncludeOtherObjects bool          `mapstructure:"include_other_objects"`
	Unreachable         bool          `mapstructure:"unreachable"`
	Highlight           bool          `mapstructure:"highlight"`
	HighlightStyle      string        `mapstructure:"highlight_style"`
	CommandTimeout      time.Duration `mapstructure:"command_timeout"`
	Strict              bool          `mapstructure:"strict"`
}

// DefaultCommandConfiguration returns baseline configuration values for the scrape report.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ShowContent:         false,
		Format:              string(OutputFormatText),
		IncludeOtherObjects: false,
		Unreachable:         false,
		Highlight:           false,
		HighlightStyle:      defaultHighlightStyleConstant,
		CommandTimeout:      defaultCommandTimeoutConstant,
		Strict:              false,
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	keyPrefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		keyPrefix + configurationShowContentKeyConstant:         defaults.ShowContent,
		keyPrefix + configurationFormatKeyConstant:              defaults.Format,
		keyPrefix + configurationIncludeOtherObjectsKeyConstant: defaults.IncludeOtherObjects,
		keyPrefix + configurationUnreachableKeyConstant:         defaults.Unreachable,
		keyPrefix + configurationHighlightKeyConstant:           defaults.Highlight,
		keyPrefix + configurationHighlightStyleKeyConstant:      defaults.HighlightStyle,
		keyPrefix + configurationCommandTimeoutKeyConstant:      defaults.CommandTimeout.String(),
		keyPrefix + configurationStrictKeyConstant:              defaults.Strict,
	}
}

// Sanitize trims string values and restores defaults for blank ones.
// A negative timeout is treated as disabled.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Format = strings.ToLower(strings.TrimSpace(configuration.Format))
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(OutputFormatText)
	}

	sanitized.HighlightStyle = strings.TrimSpace(configuration.HighlightStyle)
	if len(sanitized.HighlightStyle) == 0 {
		sanitized.HighlightStyle = defaultHighlightStyleConstant
	}

	if sanitized.CommandTimeout < 0 {
		sanitized.CommandTimeout = 0
	}

	return sanitized
}
