package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// ErrConfigTypeRequired is returned by NewViperFromBytes when no format is given.
var ErrConfigTypeRequired = errors.New("config type is required")

// Viper is a Config implementation backed by github.com/spf13/viper.
//
// Viper folds every key to lower case. For YAML and JSON sources the parsed
// document is kept as well, so UnmarshalKey can hand nested values out with
// their keys as written.
type Viper struct {
	v *viper.Viper

	mu  sync.RWMutex
	doc *yaml.Node
}

// NewViper loads configuration from the given file path and returns a Viper-backed Config.
//
// The config file type is inferred by Viper from the filename extension. Environment
// variables override file values, with dots replaced by underscores (JWT_SECRET
// overrides jwt.secret).
func NewViper(pathFile string) (*Viper, error) {
	v := newViper()

	filename := path.Base(pathFile)
	ext := path.Ext(filename)
	configName := filename[:len(filename)-len(ext)]

	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	vc := &Viper{v: v}
	configType := strings.TrimPrefix(path.Ext(v.ConfigFileUsed()), ".")
	if err := vc.loadDocument(configType, v.ConfigFileUsed()); err != nil {
		return nil, err
	}

	// Values read once at startup (the signing secret, the roster) are not
	// re-applied on reload; only per-request lookups observe the change.
	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "error", err)
			return
		}
		if err := vc.loadDocument(configType, v.ConfigFileUsed()); err != nil {
			slog.Error("config reload failed", "path", pathFile, "error", err)
			return
		}
		slog.Info("config success reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return vc, nil
}

// NewViperFromBytes loads configuration from memory and returns a Viper-backed Config.
// configType should be a format supported by Viper (e.g. "yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigTypeRequired
	}

	v := newViper()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	doc, err := parseDocument(configType, data)
	if err != nil {
		return nil, err
	}

	return &Viper{v: v, doc: doc}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (vc *Viper) loadDocument(configType, file string) error {
	data, err := os.ReadFile(file) // #nosec G304 -- path is the config file viper just read.
	if err != nil {
		return err
	}

	doc, err := parseDocument(configType, data)
	if err != nil {
		return err
	}

	vc.mu.Lock()
	vc.doc = doc
	vc.mu.Unlock()

	return nil
}

// parseDocument returns nil for formats yaml.v3 cannot read.
func parseDocument(configType string, data []byte) (*yaml.Node, error) {
	switch strings.ToLower(strings.TrimSpace(configType)) {
	case "yaml", "yml", "json":
	default:
		return nil, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// lookup walks a dotted key through mapping nodes. Keys match case-insensitively,
// as they do in viper.
func lookup(doc *yaml.Node, key string) *yaml.Node {
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}

	for part := range strings.SplitSeq(key, ".") {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
		}
		if n.Kind != yaml.MappingNode {
			return nil
		}

		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if strings.EqualFold(n.Content[i].Value, part) {
				next = n.Content[i+1]
			}
		}
		if next == nil {
			return nil
		}
		n = next
	}

	return n
}

// GetInt returns the value for key as int.
func (vc *Viper) GetInt(key string) int {
	return vc.v.GetInt(key)
}

// GetFloat64 returns the value for key as float64.
func (vc *Viper) GetFloat64(key string) float64 {
	return vc.v.GetFloat64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetSecond returns the value for key as seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key split by commas. Blank elements are dropped.
func (vc *Viper) GetArray(key string) []string {
	raw := vc.v.GetString(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// UnmarshalKey decodes the sub-tree at key into out using yaml struct tags.
// Nested map keys keep their case. A missing key leaves out untouched.
// Sources other than YAML or JSON fall back to viper, which lower-cases keys
// and decodes with mapstructure tags. Environment overrides do not apply here.
func (vc *Viper) UnmarshalKey(key string, out any) error {
	vc.mu.RLock()
	doc := vc.doc
	vc.mu.RUnlock()

	if doc == nil {
		return vc.v.UnmarshalKey(key, out)
	}

	node := lookup(doc, key)
	if node == nil {
		return nil
	}

	return node.Decode(out)
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
