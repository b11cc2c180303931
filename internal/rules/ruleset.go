// Package rules provides the built-in substitution and refactoring strategies for the diff engine, and a rules file format that configures them.
//
// A rules file is TOML or YAML:
//
//	normalize = "whitespace"
//
//	[similarity]
//	threshold = 0.6
//
//	[[substitution]]
//	kind = "assert-style"
//	pattern = 'assertEquals\((.*), (.*)\)'
//	replacement = 'assertThat($2).isEqualTo($1)'
//
//	[[refactoring]]
//	kind = "import"
//	pattern = '^import '
//	side = "left"
//
//	[[ignore]]
//	pattern = '^//'
//
// Substitutions are tried in file order, then similarity. Ignore rules are tried before refactorings.
package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/codalotl/diffrefine/internal/diff"
)

var (
	ErrUnknownFormat = errors.New("unknown rules file format")
	ErrInvalidRule   = errors.New("invalid rule")
)

// DefaultThreshold is the similarity threshold of Default.
const DefaultThreshold = 0.5

// RuleSet is the decoded form of a rules file.
type RuleSet struct {
	Normalize     string          `toml:"normalize" yaml:"normalize"`
	Similarity    *SimilarityRule `toml:"similarity" yaml:"similarity"`
	Substitutions []RewriteRule   `toml:"substitution" yaml:"substitution"`
	Refactorings  []RefactorRule  `toml:"refactoring" yaml:"refactoring"`
	Ignores       []IgnorePattern `toml:"ignore" yaml:"ignore"`
}

type SimilarityRule struct {
	Threshold float64 `toml:"threshold" yaml:"threshold"`
}

type RewriteRule struct {
	Kind        string `toml:"kind" yaml:"kind"`
	Pattern     string `toml:"pattern" yaml:"pattern"`
	Replacement string `toml:"replacement" yaml:"replacement"`
}

type RefactorRule struct {
	Kind    string `toml:"kind" yaml:"kind"`
	Pattern string `toml:"pattern" yaml:"pattern"`
	Side    string `toml:"side" yaml:"side"`
	Ignore  bool   `toml:"ignore" yaml:"ignore"`
}

type IgnorePattern struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
}

// Default returns the rule set used when no rules file is given: whitespace normalization and similarity at DefaultThreshold.
func Default() *RuleSet {
	return &RuleSet{
		Normalize:  "whitespace",
		Similarity: &SimilarityRule{Threshold: DefaultThreshold},
	}
}

// Load reads and decodes the rules file at path. The format is chosen by extension: .toml, .yaml, or .yml.
func Load(path string) (*RuleSet, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = "toml"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	rs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes data as format ("toml" or "yaml"). Unknown keys are an error.
func Parse(data []byte, format string) (*RuleSet, error) {
	var rs RuleSet
	switch format {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&rs); err != nil {
			return nil, fmt.Errorf("failed to parse rules: %w", err)
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&rs); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse rules: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &rs, nil
}

// Compiled is a RuleSet ready to be plugged into diff.Options.
type Compiled struct {
	Normalize     diff.Normalizer
	Substitutions []diff.SubstitutionType
	Refactorings  []diff.RefactoringType
}

// Apply sets the normalizer and strategies of opts.
func (c *Compiled) Apply(opts *diff.Options) {
	opts.Normalize = c.Normalize
	opts.Substitutions = c.Substitutions
	opts.Refactorings = c.Refactorings
}

// Compile validates rs and builds its strategies. All problems are reported, joined.
func (rs *RuleSet) Compile() (*Compiled, error) {
	var errs []error
	c := &Compiled{}

	fn, err := diff.NormalizerByName(rs.Normalize)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidRule, err))
	}
	c.Normalize = fn

	for i, r := range rs.Substitutions {
		if r.Kind == "" {
			errs = append(errs, fmt.Errorf("%w: substitution[%d]: kind is required", ErrInvalidRule, i))
			continue
		}
		rw, err := NewRewrite(r.Kind, r.Pattern, r.Replacement)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: substitution[%d]: %v", ErrInvalidRule, i, err))
			continue
		}
		c.Substitutions = append(c.Substitutions, rw)
	}
	if rs.Similarity != nil {
		if t := rs.Similarity.Threshold; t <= 0 || t > 1 {
			errs = append(errs, fmt.Errorf("%w: similarity threshold %v is not in (0, 1]", ErrInvalidRule, t))
		} else {
			c.Substitutions = append(c.Substitutions, Similarity{Threshold: t})
		}
	}

	for i, r := range rs.Ignores {
		ig, err := NewIgnoreRule(r.Pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: ignore[%d]: %v", ErrInvalidRule, i, err))
			continue
		}
		c.Refactorings = append(c.Refactorings, ig)
	}
	for i, r := range rs.Refactorings {
		if r.Kind == "" {
			errs = append(errs, fmt.Errorf("%w: refactoring[%d]: kind is required", ErrInvalidRule, i))
			continue
		}
		sides, err := ParseSides(r.Side)
		if err != nil {
			errs = append(errs, fmt.Errorf("refactoring[%d]: %w", i, err))
			continue
		}
		p, err := NewPattern(r.Kind, r.Pattern, sides, r.Ignore)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: refactoring[%d]: %v", ErrInvalidRule, i, err))
			continue
		}
		c.Refactorings = append(c.Refactorings, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}
