// Package options defines the caller-supplied options shared by the add,
// setup, and remove flows, and validates them against an embedded JSON Schema.
package options

import (
	"fmt"
	"os"

	"github.com/ngtw-labs/ngtw/internal/dependencies"
	"go.yaml.in/yaml/v3"
)

// StyleExtension is the extension of the provisioned Tailwind style file.
type StyleExtension string

const (
	CSS  StyleExtension = "css"
	SCSS StyleExtension = "scss"
)

// Default version ranges recorded in package.json.
const (
	DefaultTailwindVersion      = "^1.1.4"
	DefaultCustomWebpackVersion = "^8.4.0"
	DefaultPackageManager       = "npm"
)

// Options configures a flow run.
type Options struct {
	Project              string         `json:"project,omitempty" yaml:"project,omitempty"`
	TailwindVersion      string         `json:"tailwindVersion,omitempty" yaml:"tailwindVersion,omitempty"`
	CustomWebpackVersion string         `json:"customWebpackVersion,omitempty" yaml:"customWebpackVersion,omitempty"`
	StyleExtension       StyleExtension `json:"styleExtension,omitempty" yaml:"styleExtension,omitempty"`
	Overwrite            bool           `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
	SkipInstall          bool           `json:"skipInstall,omitempty" yaml:"skipInstall,omitempty"`
	PackageManager       string         `json:"packageManager,omitempty" yaml:"packageManager,omitempty"`
}

// Defaults returns options populated with the built-in version ranges.
func Defaults() Options {
	return Options{
		TailwindVersion:      DefaultTailwindVersion,
		CustomWebpackVersion: DefaultCustomWebpackVersion,
		PackageManager:       DefaultPackageManager,
	}
}

// WithDefaults fills every empty string option from Defaults. Booleans are
// left as they are.
func (o Options) WithDefaults() Options {
	d := Defaults()
	if o.TailwindVersion == "" {
		o.TailwindVersion = d.TailwindVersion
	}
	if o.CustomWebpackVersion == "" {
		o.CustomWebpackVersion = d.CustomWebpackVersion
	}
	if o.PackageManager == "" {
		o.PackageManager = d.PackageManager
	}
	return o
}

// Option keys, as spelled in options files and the schema.
const (
	KeyProject              = "project"
	KeyTailwindVersion      = "tailwindVersion"
	KeyCustomWebpackVersion = "customWebpackVersion"
	KeyStyleExtension       = "styleExtension"
	KeyOverwrite            = "overwrite"
	KeySkipInstall          = "skipInstall"
	KeyPackageManager       = "packageManager"
)

// Layer is a partial set of options, such as an options file or the flags a
// user typed. Only the keys it names are applied, so an explicit false
// overrides a true from a lower layer.
type Layer struct {
	values Options
	set    map[string]bool
}

// NewLayer returns a layer applying the named keys of values.
func NewLayer(values Options, keys ...string) Layer {
	l := Layer{values: values, set: make(map[string]bool, len(keys))}
	for _, k := range keys {
		l.set[k] = true
	}
	return l
}

// Apply returns o with the layer's keys applied on top.
func (l Layer) Apply(o Options) Options {
	v := l.values
	if l.set[KeyProject] {
		o.Project = v.Project
	}
	if l.set[KeyTailwindVersion] {
		o.TailwindVersion = v.TailwindVersion
	}
	if l.set[KeyCustomWebpackVersion] {
		o.CustomWebpackVersion = v.CustomWebpackVersion
	}
	if l.set[KeyStyleExtension] {
		o.StyleExtension = v.StyleExtension
	}
	if l.set[KeyOverwrite] {
		o.Overwrite = v.Overwrite
	}
	if l.set[KeySkipInstall] {
		o.SkipInstall = v.SkipInstall
	}
	if l.set[KeyPackageManager] {
		o.PackageManager = v.PackageManager
	}
	return o
}

// Validate checks o against the options schema and verifies the version
// overrides parse as npm ranges.
func (o Options) Validate() error {
	result, err := ValidateValue(o)
	if err != nil {
		return err
	}
	if !result.Valid {
		return &ValidationError{Issues: result.Issues}
	}

	for field, v := range map[string]string{
		"tailwindVersion":      o.TailwindVersion,
		"customWebpackVersion": o.CustomWebpackVersion,
	} {
		if v == "" {
			continue
		}
		if err := dependencies.ValidateRange(v); err != nil {
			return &ValidationError{Issues: []ValidationIssue{{
				Path:    "/" + field,
				Message: err.Error(),
				Keyword: "format",
			}}}
		}
	}
	return nil
}

// LoadFile reads an options layer from a YAML (or JSON) file. Unknown keys and
// values outside the schema are rejected before decoding.
func LoadFile(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, fmt.Errorf("reading options file %s: %w", path, err)
	}

	result, err := ValidateYAML(data)
	if err != nil {
		return Layer{}, fmt.Errorf("validating options file %s: %w", path, err)
	}
	if !result.Valid {
		return Layer{}, fmt.Errorf("options file %s: %w", path, &ValidationError{Issues: result.Issues})
	}

	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Layer{}, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	var present map[string]interface{}
	if err := yaml.Unmarshal(data, &present); err != nil {
		return Layer{}, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	keys := make([]string, 0, len(present))
	for k := range present {
		keys = append(keys, k)
	}
	return NewLayer(o, keys...), nil
}
