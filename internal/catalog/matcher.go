package catalog

import (
	"regexp"
	"strings"
)

// patternMatcher answers whether one compiled pattern matches a string.
type patternMatcher interface {
	matches(s string) bool
}

// substringPattern is a case-insensitive "contains" match. The needle is
// stored lowercased at compile time.
type substringPattern string

func (p substringPattern) matches(s string) bool {
	return strings.Contains(strings.ToLower(s), string(p))
}

type regexPattern struct {
	re *regexp.Regexp
}

func (p regexPattern) matches(s string) bool {
	return p.re.MatchString(s)
}

// neverPattern stands in for a regex that failed to compile. A bad
// pattern matches nothing; it must not surface as an error at match time.
type neverPattern struct{}

func (neverPattern) matches(string) bool { return false }

func compilePattern(pattern string, useRegex bool) patternMatcher {
	if !useRegex {
		return substringPattern(strings.ToLower(pattern))
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return neverPattern{}
	}
	return regexPattern{re: re}
}

type compiledApp struct {
	id       string
	name     string
	patterns []patternMatcher
}

func (a *compiledApp) matches(name, command string) bool {
	for _, p := range a.patterns {
		if p.matches(name) || (command != "" && p.matches(command)) {
			return true
		}
	}
	return false
}

type compiledCategory struct {
	id   string
	apps []compiledApp
}

// Matcher resolves a process to its category and application by walking
// enabled categories in catalog order. Patterns are compiled once at
// construction, not per match call.
type Matcher struct {
	categories []compiledCategory
}

// NewMatcher compiles the enabled subset of the catalog. Category and
// definition order is preserved because it decides match precedence.
func NewMatcher(cats []AppCategory) *Matcher {
	m := &Matcher{}
	for _, c := range cats {
		if !c.Enabled {
			continue
		}
		cc := compiledCategory{id: c.ID}
		for _, app := range c.Apps {
			ca := compiledApp{id: app.ID, name: app.Name}
			for _, p := range app.Patterns {
				ca.patterns = append(ca.patterns, compilePattern(p, app.UseRegex))
			}
			cc.apps = append(cc.apps, ca)
		}
		m.categories = append(m.categories, cc)
	}
	return m
}

// Resolve returns the category id and friendly application name for a
// process. The first definition that matches either the process name or
// its command path wins; ok is false when nothing matched.
func (m *Matcher) Resolve(name, command string) (categoryID, appName string, ok bool) {
	for _, c := range m.categories {
		for i := range c.apps {
			if c.apps[i].matches(name, command) {
				return c.id, c.apps[i].name, true
			}
		}
	}
	return "", "", false
}
