package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/lex-fmt/core-sub004/internal"
	"github.com/lex-fmt/core-sub004/internal/trie"
	tt "github.com/lex-fmt/core-sub004/internal/types"
)

// DefaultConfigFile is the configuration written by "lex init".
const DefaultConfigFile = ".lex.yaml"

// Config is the checker configuration, read from YAML or TOML.
type Config struct {
	Name  string                   `yaml:"name" toml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules" toml:"rules"`
	// Extensions selects the files checked when walking directories.
	Extensions  []string `yaml:"extensions" toml:"extensions"`
	IgnorePaths []string `yaml:"ignore_paths,omitempty" toml:"ignore_paths"`
	// Inlines enables the inline.* rules.
	Inlines bool `yaml:"inlines" toml:"inlines"`
	// AttachAnnotations runs the attachment pass before checking.
	AttachAnnotations bool `yaml:"attach_annotations" toml:"attach_annotations"`
	// CacheDir keeps results between runs. Empty disables the cache.
	CacheDir string `yaml:"cache_dir,omitempty" toml:"cache_dir"`
}

func DefaultConfig() Config {
	return Config{
		Name:              "lex",
		Rules:             map[string]tt.ConfigRule{},
		Extensions:        append([]string(nil), internal.DefaultExtensions...),
		Inlines:           true,
		AttachAnnotations: true,
	}
}

// LoadConfig reads the configuration at path on top of DefaultConfig.
// Files ending in .toml are read as TOML, anything else as YAML. An empty
// path yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.NewDecoder(f).Decode(&config); err != nil {
			return config, fmt.Errorf("error decoding %s: %w", path, err)
		}
	} else {
		if err := yaml.NewDecoder(f).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return config, fmt.Errorf("error decoding %s: %w", path, err)
		}
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}

// Validate checks that every configured rule exists and every extension
// starts with a dot.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Extensions, validation.Required, validation.Each(validation.By(validExtension))),
		validation.Field(&c.Rules, validation.By(knownRules)),
	)
}

func validExtension(value any) error {
	ext, _ := value.(string)
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return validation.NewError("lex.config.extension", fmt.Sprintf("extension %q must start with a dot", ext))
	}
	return nil
}

func knownRules(value any) error {
	rules, _ := value.(map[string]tt.ConfigRule)
	for key := range rules {
		scope := trie.New()
		scope.Add(key)
		found := false
		for _, name := range internal.RuleNames() {
			if scope.Covers(name) {
				found = true
				break
			}
		}
		if !found {
			return validation.NewError("lex.config.unknown_rule", fmt.Sprintf("unknown rule %q", key))
		}
	}
	return nil
}

// Write stores c as YAML at path.
func (c Config) Write(path string) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
