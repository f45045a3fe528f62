package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// the config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Flow: FlowConfig{
			EntryMethod: "Page_Load",
			HandlerSuffixes: []string{
				"_Click",
				"_Changed",
				"_SelectedIndexChanged",
				"_CheckedChanged",
			},
		},
		Output: OutputConfig{
			Direction: "TD",
			Suffix:    ".flow.md",
		},
		History: HistoryConfig{},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{
		Flow:   defaults.Flow,
		Output: defaults.Output,
		// History's zero value is the default, so the loaded value wins.
		History: loaded.History,
	}

	if loaded.Flow.EntryMethod != "" {
		result.Flow.EntryMethod = loaded.Flow.EntryMethod
	}
	if loaded.Flow.HandlerSuffixes != nil {
		result.Flow.HandlerSuffixes = loaded.Flow.HandlerSuffixes
	}
	if loaded.Output.Direction != "" {
		result.Output.Direction = loaded.Output.Direction
	}
	if loaded.Output.Suffix != "" {
		result.Output.Suffix = loaded.Output.Suffix
	}

	return result
}
