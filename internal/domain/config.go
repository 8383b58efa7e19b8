package domain

// Config mirrors ~/.ganpi/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	APIKey              string             `yaml:"api_key"`
	Model               string             `yaml:"model"`
	Endpoint            string             `yaml:"endpoint"`
	Dialect             string             `yaml:"dialect"`
	HTTPTimeoutSeconds  int                `yaml:"http_timeout_seconds"`
	Generation          GenerationSettings `yaml:"generation"`
	Summary             GenerationSettings `yaml:"summary"`
	Context             ContextSettings    `yaml:"context"`
	Parser              ParserSettings     `yaml:"parser"`
	Security            SecuritySettings   `yaml:"security"`
	History             HistorySettings    `yaml:"history"`
	Cache               CacheSettings      `yaml:"cache"`
}

// GenerationSettings maps onto the Gemini generationConfig object.
type GenerationSettings struct {
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

// ContextSettings bounds how much of the working directory ends up in a prompt.
type ContextSettings struct {
	ListingLimit int `yaml:"listing_limit"`
	TreeLimit    int `yaml:"tree_limit"`
	FilesLimit   int `yaml:"files_limit"`
	MentionLimit int `yaml:"mention_limit"`
}

// ParserSettings tunes response extraction.
type ParserSettings struct {
	// UTF8Escapes writes every non-ASCII \uXXXX as UTF-8 instead of a single byte up to U+00FF.
	UTF8Escapes bool `yaml:"utf8_escapes"`
}

// SecuritySettings points at the classifier rules file.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file"`
}

// HistorySettings controls the run history store.
type HistorySettings struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

// CacheSettings controls the model response cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}
