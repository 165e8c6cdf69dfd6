package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/sqlcheck/internal/alerr"
	"github.com/hlop3z/sqlcheck/internal/checker"
	"github.com/hlop3z/sqlcheck/internal/engine"
)

const defaultConfigFile = "sqlcheck.yaml"

// Environment variables read by loadConfig.
const (
	envBaseDir = "SQLCHECK_BASE_DIR"
	envEngine  = "SQLCHECK_ENGINE"
	envRefDir  = "SQLCHECK_REF_DIR"
)

// Config represents the sqlcheck.yaml configuration file.
type Config struct {
	Engine   string `yaml:"engine"`
	Database string `yaml:"database"`
	RefDir   string `yaml:"ref_dir"`
	Sort     bool   `yaml:"sort"`
	FailExit bool   `yaml:"fail_exit"`

	// BaseDir comes from --base-dir, the environment or the executable's
	// location. The config file itself lives inside it.
	BaseDir string `yaml:"-"`
}

// Layout returns the fixture layout described by the config.
func (c *Config) Layout() checker.Layout {
	return checker.Layout{
		BaseDir:  c.BaseDir,
		Database: c.Database,
		RefDir:   c.RefDir,
	}
}

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults
func loadConfig(flags *pflag.FlagSet, opts *rootOptions) (*Config, error) {
	cfg := &Config{
		Engine:   engine.DefaultBinary,
		Database: checker.DefaultDatabase,
		RefDir:   checker.DefaultRefDir,
	}

	baseDir, err := resolveBaseDir(opts.baseDir)
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = baseDir

	// An explicit --config must exist; the default one is optional.
	path, required := opts.configFile, true
	if path == "" {
		path, required = filepath.Join(baseDir, defaultConfigFile), false
	}
	if err := readConfigFile(path, cfg, required); err != nil {
		return nil, err
	}

	// Override with env vars
	if v := os.Getenv(envEngine); v != "" {
		cfg.Engine = v
	}
	if v := os.Getenv(envRefDir); v != "" {
		cfg.RefDir = v
	}

	// Override with CLI flags (highest priority)
	if opts.engine != "" {
		cfg.Engine = opts.engine
	}
	if flags.Changed("sort") {
		cfg.Sort = opts.sort
	}
	if flags.Changed("fail-exit") {
		cfg.FailExit = opts.failExit
	}

	// Empty values in the file fall back to the defaults.
	if cfg.Engine == "" {
		cfg.Engine = engine.DefaultBinary
	}
	if cfg.Database == "" {
		cfg.Database = checker.DefaultDatabase
	}
	if cfg.RefDir == "" {
		cfg.RefDir = checker.DefaultRefDir
	}

	return cfg, nil
}

// resolveBaseDir picks the fixture directory: the flag, then the environment,
// then the directory of the executable. The working directory is never used
// implicitly.
func resolveBaseDir(flag string) (string, error) {
	dir := flag
	if dir == "" {
		dir = os.Getenv(envBaseDir)
	}
	if dir == "" {
		exeDir, err := checker.ExecutableDir()
		if err != nil {
			return "", err
		}
		dir = exeDir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", alerr.Wrap(alerr.ErrConfigInvalid, err, "invalid base directory").WithPath(dir)
	}
	return abs, nil
}

// readConfigFile decodes the YAML file at path into cfg. Unknown keys are
// rejected so a typo does not silently fall back to a default.
func readConfigFile(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return alerr.Wrap(alerr.ErrConfigInvalid, err, "failed to read config file").WithPath(path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return alerr.Wrap(alerr.ErrConfigInvalid, err, "failed to parse config file").
			WithFile(path, yamlErrorLine(err)).
			WithHelp("valid keys: engine, database, ref_dir, sort, fail_exit")
	}

	// Handle env var interpolation in paths
	cfg.Engine = expandEnvVars(cfg.Engine)
	cfg.Database = expandEnvVars(cfg.Database)
	cfg.RefDir = expandEnvVars(cfg.RefDir)

	return nil
}

// yamlLinePattern matches the "line N:" prefix yaml.v3 puts on syntax and
// type errors.
var yamlLinePattern = regexp.MustCompile(`line (\d+):`)

// yamlErrorLine returns the first line number named in a yaml.v3 error, or 0.
func yamlErrorLine(err error) int {
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// session bundles what a command needs once flags are parsed.
type session struct {
	cfg     *Config
	checker *checker.Checker
	logger  *slog.Logger
}

// setup loads the configuration and builds the checker for cmd.
func (o *rootOptions) setup(cmd *cobra.Command) (*session, error) {
	logger := newLogger(o.stderr, o.verbose)

	cfg, err := loadConfig(cmd.Flags(), o)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config",
		"base_dir", cfg.BaseDir,
		"engine", cfg.Engine,
		"database", cfg.Database,
		"ref_dir", cfg.RefDir,
		"sort", cfg.Sort,
	)

	c := checker.New(cfg.Layout(), engine.NewCLI(cfg.Engine), checker.WithLogger(logger))
	return &session{cfg: cfg, checker: c, logger: logger}, nil
}
