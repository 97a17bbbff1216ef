// Package pipeline orchestrates the sequence an external CLI drives: parse
// every input file, optionally resolve its imports, optionally apply a
// selection/mutation, then write a result in the configured format. It is
// the concrete "external collaborator" the specification leaves as a
// boundary — argument parsing and process exit codes belong to cmd/sysmlfmt,
// not here.
package pipeline

// OutputFormat selects what Run writes to its output sink.
type OutputFormat string

const (
	OutputNone  OutputFormat = "none"
	OutputJSON  OutputFormat = "json"
	OutputXML   OutputFormat = "xml" // reserved, not implemented
	OutputSysML OutputFormat = "sysml"
)

// Config mirrors the CLI surface the specification enumerates. It is
// loadable from YAML (e.g. a checked-in .sysmlconfig.yaml) via LoadConfig,
// the way the teacher's linage fixtures carry their own yaml-tagged
// structured config.
type Config struct {
	Inputs []string `yaml:"inputs"`

	ParseOnly      bool `yaml:"parse_only"`
	NoResolve      bool `yaml:"no_resolve"`
	StrictImports  bool `yaml:"strict_imports"`
	Verbose        bool `yaml:"verbose"`
	Recursive      bool `yaml:"recursive"`

	OutputFormat OutputFormat `yaml:"output_format"`

	SelectPatterns []string `yaml:"select_patterns"`
	DeletePatterns []string `yaml:"delete_patterns"`

	SetFragments []string `yaml:"set_fragments"`
	SetTargets   []string `yaml:"set_targets"`
	CreateScope  string   `yaml:"create_scope"`
	ReplaceScope bool     `yaml:"replace_scope"`
	ForceReplace bool     `yaml:"force_replace"`

	DryRun bool `yaml:"dry_run"`

	LibraryPaths []string `yaml:"library_paths"`

	TreatWarningsAsErrors bool   `yaml:"treat_warnings_as_errors"`
	MaxErrors             int    `yaml:"max_errors"`
	ColorMode             string `yaml:"color_mode"`
}
