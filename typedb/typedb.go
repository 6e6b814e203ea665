// Package typedb holds the per-unit configuration a conversion consults:
// which types to generate, which to block, effective-type remaps, value-type
// directives and the native include list.
package typedb

import (
	"fmt"
	"os"
	"sort"

	"github.com/rubiojr/bindconv/ast"
	"gopkg.in/yaml.v3"
)

// MakeStringName is the utility function generated unless utilities are
// excluded. It is always on the accept-list in that case.
const MakeStringName = "make_string"

// Config is the on-disk configuration document.
type Config struct {
	// Include lists native headers carried verbatim into the bridge.
	Include []string `yaml:"include"`
	// Generate is the accept-list of qualified native names.
	Generate []string `yaml:"generate"`
	// Block is the deny-list; it wins over Generate.
	Block []string `yaml:"block"`
	// POD lists types that must be held by value.
	POD []string `yaml:"pod"`
	// Aliases remaps a qualified name to its effective name before
	// accept/deny-list checks and identity assertions.
	Aliases map[string]string `yaml:"aliases"`
	// ExcludeUtilities suppresses the make_string utility.
	ExcludeUtilities bool `yaml:"exclude_utilities"`
}

// TypeDatabase answers configuration queries for one conversion.
type TypeDatabase struct {
	includes         []string
	allowlist        map[ast.TypeName]bool
	blocklist        map[ast.TypeName]bool
	pod              []ast.TypeName
	effective        map[ast.TypeName]ast.TypeName
	excludeUtilities bool
}

// New builds a TypeDatabase from a Config.
func New(cfg Config) *TypeDatabase {
	db := &TypeDatabase{
		includes:         append([]string(nil), cfg.Include...),
		allowlist:        make(map[ast.TypeName]bool),
		blocklist:        make(map[ast.TypeName]bool),
		effective:        make(map[ast.TypeName]ast.TypeName),
		excludeUtilities: cfg.ExcludeUtilities,
	}
	for _, name := range cfg.Generate {
		db.allowlist[ast.ParseTypeName(name)] = true
	}
	for _, name := range cfg.POD {
		tn := ast.ParseTypeName(name)
		db.allowlist[tn] = true
		db.pod = append(db.pod, tn)
	}
	if !cfg.ExcludeUtilities {
		db.allowlist[ast.ParseTypeName(MakeStringName)] = true
	}
	for _, name := range cfg.Block {
		db.blocklist[ast.ParseTypeName(name)] = true
	}
	for from, to := range cfg.Aliases {
		db.effective[ast.ParseTypeName(from)] = ast.ParseTypeName(to)
	}
	sort.Slice(db.pod, func(i, j int) bool { return db.pod[i].Less(db.pod[j]) })
	return db
}

// Load reads a YAML (or JSON) configuration file.
func Load(path string) (*TypeDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	db, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}

// Parse decodes a configuration document.
func Parse(data []byte) (*TypeDatabase, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return New(cfg), nil
}

// IsOnAllowlist reports whether tn was requested for generation.
func (db *TypeDatabase) IsOnAllowlist(tn ast.TypeName) bool { return db.allowlist[tn] }

// IsOnBlocklist reports whether tn must never be generated.
func (db *TypeDatabase) IsOnBlocklist(tn ast.TypeName) bool { return db.blocklist[tn] }

// EffectiveType returns the remapped name for tn, if any.
func (db *TypeDatabase) EffectiveType(tn ast.TypeName) (ast.TypeName, bool) {
	eff, ok := db.effective[tn]
	return eff, ok
}

// PODRequests returns the types that must be held by value, sorted.
func (db *TypeDatabase) PODRequests() []ast.TypeName { return db.pod }

// Includes returns the native include list in configuration order.
func (db *TypeDatabase) Includes() []string { return db.includes }

// ExcludeUtilities reports whether utility APIs are suppressed.
func (db *TypeDatabase) ExcludeUtilities() bool { return db.excludeUtilities }
