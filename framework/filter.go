package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by matching their full path, as in "masks/0x2a/static". A test
// runs if it matches one of MustMatch (or MustMatch is empty) and none of MustNotMatch.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter has the Filter signature, so r.AsFilter can be passed to Run.
func (r RegexFilters) AsFilter(id TestID) bool {
	path := id.String()
	if r.MustNotMatch.AnyMatch(path) {
		return false
	}
	return !r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(path)
}

// RegexList is a repeatable command line flag of regular expressions.
type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	quoted := make([]string, len(r.patterns))
	for i, p := range r.patterns {
		quoted[i] = fmt.Sprintf("%q", p.String())
	}
	return strings.Join(quoted, " or ")
}

// Patterns returns the source text of each pattern, in the order they were added.
func (r RegexList) Patterns() []string {
	ret := make([]string, 0, len(r.patterns))
	for _, p := range r.patterns {
		ret = append(ret, p.String())
	}
	return ret
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) > 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// PrintFilterDescription tells the user which tests a run will skip, either because of the
// -run/-skip filters or because the target does not claim a capability.
func PrintFilterDescription(out io.Writer, harness *TestHarness, filters RegexFilters, allCapabilities []string) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}

	missing := missingCapabilities(harness, allCapabilities)
	if len(missing) > 0 {
		fmt.Fprintf(out, "Some tests may be skipped because %q does not support the following capabilities:\n",
			harness.TargetInfo().Name)
		fmt.Fprintf(out, "  %s\n", strings.Join(missing, ", "))
		fmt.Fprintln(out)
	}
}

func missingCapabilities(harness *TestHarness, all []string) []string {
	var ret []string
	for _, c := range all {
		if !harness.HasCapability(c) {
			ret = append(ret, c)
		}
	}
	return ret
}
