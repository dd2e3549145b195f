package probetests

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mask is a 64-bit value passed in both mask slots. In flags and config files it can be written
// in decimal, in 0x hex, or as a negative decimal for its two's complement bit pattern.
type Mask uint64

func ParseMask(s string) (Mask, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return Mask(u), nil
	}
	i, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid mask %q: must be a 64-bit integer", s)
	}
	return Mask(uint64(i)), nil
}

func (m Mask) String() string {
	return fmt.Sprintf("%#x", uint64(m))
}

func (m *Mask) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mask must be a scalar", node.Line)
	}
	parsed, err := ParseMask(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = parsed
	return nil
}

// MaskList is a repeatable command line flag of masks.
type MaskList []Mask

func (l MaskList) String() string {
	ss := make([]string, 0, len(l))
	for _, m := range l {
		ss = append(ss, m.String())
	}
	return strings.Join(ss, ",")
}

// Set is called by the command line parser
func (l *MaskList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		m, err := ParseMask(part)
		if err != nil {
			return err
		}
		*l = append(*l, m)
	}
	return nil
}

// SuiteConfig controls the inputs of a test run.
type SuiteConfig struct {
	// Masks are the values passed in the two mask slots. Every mask-dependent test runs once
	// per mask.
	Masks MaskList `yaml:"masks"`

	// Invocations is how many concurrent invocations the concurrency tests make.
	Invocations int `yaml:"invocations"`

	// Parallelism caps how many of those invocations run at once.
	Parallelism int `yaml:"parallelism"`
}

// DefaultMasks covers zero, all-ones, single-bit and mixed-byte patterns.
var DefaultMasks = MaskList{
	0,
	1,
	42,
	0xABCD,
	0x1020304050607080,
	102030405060708090,
	0x8000000000000000,
	0xFFFFFFFFFFFFFFFF,
}

const (
	defaultInvocations = 64
	defaultParallelism = 8
)

func DefaultSuiteConfig() SuiteConfig {
	return SuiteConfig{
		Masks:       append(MaskList(nil), DefaultMasks...),
		Invocations: defaultInvocations,
		Parallelism: defaultParallelism,
	}
}

// LoadSuiteConfig reads a YAML config file. Fields the file leaves out keep their defaults.
func LoadSuiteConfig(path string) (SuiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SuiteConfig{}, fmt.Errorf("reading suite config: %w", err)
	}
	return ParseSuiteConfig(data)
}

func ParseSuiteConfig(data []byte) (SuiteConfig, error) {
	var raw SuiteConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return SuiteConfig{}, fmt.Errorf("parsing suite config: %w", err)
	}
	config := DefaultSuiteConfig()
	if raw.Masks != nil {
		config.Masks = raw.Masks
	}
	if raw.Invocations != 0 {
		config.Invocations = raw.Invocations
	}
	if raw.Parallelism != 0 {
		config.Parallelism = raw.Parallelism
	}
	return config, config.Validate()
}

var errNoMasks = errors.New("at least one mask is required")

// Validate checks that the config can drive a test run.
func (c SuiteConfig) Validate() error {
	if len(c.Masks) == 0 {
		return errNoMasks
	}
	if c.Invocations < 1 {
		return fmt.Errorf("invocations must be positive, got %d", c.Invocations)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be positive, got %d", c.Parallelism)
	}
	return nil
}
