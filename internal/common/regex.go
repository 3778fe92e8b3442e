package common

import (
	"fmt"
	"regexp"
)

// CompileWithGroups compiles pattern and requires at least groups capturing
// groups in it.
func CompileWithGroups(pattern string, groups int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < groups {
		return nil, fmt.Errorf("pattern %q has %d capturing groups, need %d", pattern, re.NumSubexp(), groups)
	}
	return re, nil
}

// FirstSubmatch returns the first capturing group of the leftmost match.
// An empty capture counts as no match.
func FirstSubmatch(re *regexp.Regexp, text string) (string, bool) {
	match := re.FindStringSubmatch(text)
	if len(match) < 2 || match[1] == "" {
		return "", false
	}
	return match[1], true
}
