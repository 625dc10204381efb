package dialect

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the decoded form of a foldspan.toml file. It carries per-language
// delimiter overrides and extra custom-region marker prefixes.
//
// Example:
//
//	[languages.go]
//	line = "//"
//
//	[languages.sql]
//	line = "--"
//	block-start = "/*"
//	block-end = "*/"
//
//	[regions]
//	markers = ["#pragma region", "MARK:"]
type Config struct {
	Languages map[string]LanguageConfig `toml:"languages"`
	Regions   RegionConfig              `toml:"regions"`
}

// LanguageConfig holds the overridable delimiter fields for one language.
// Fields left unset keep the builtin value.
type LanguageConfig struct {
	Line       string `toml:"line"`
	BlockStart string `toml:"block-start"`
	BlockEnd   string `toml:"block-end"`
	DocStart   string `toml:"doc-start"`
	DocEnd     string `toml:"doc-end"`
	DocLine    string `toml:"doc-line"`
}

// RegionConfig lists extra marker prefixes recognized as custom-region
// pragmas in addition to the builtin region/endregion and editor-fold forms.
type RegionConfig struct {
	Markers []string `toml:"markers"`
}

// LoadConfig reads and decodes a foldspan.toml file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("dialect: load %s: %w", path, err)
	}
	return &cfg, nil
}

// Overrides converts the config's language sections into the map form
// accepted by Registry.Apply.
func (c *Config) Overrides() map[string]Dialect {
	if len(c.Languages) == 0 {
		return nil
	}
	out := make(map[string]Dialect, len(c.Languages))
	for lang, lc := range c.Languages {
		out[lang] = Dialect{
			Line:       lc.Line,
			BlockStart: lc.BlockStart,
			BlockEnd:   lc.BlockEnd,
			DocStart:   lc.DocStart,
			DocEnd:     lc.DocEnd,
			DocLine:    lc.DocLine,
		}
	}
	return out
}
