// Package pathmatch implements find -path glob matching.
//
// Semantics follow fnmatch(3) without FNM_PATHNAME:
//   - * matches any run of characters, including /
//   - ? matches exactly one character, including /
//   - [...] matches one character from the set ([!...] negates)
//   - \ escapes the next character
//
// This deliberately differs from filepath.Match, where * stops at
// directory separators.
package pathmatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Matcher holds a set of patterns compiled for reuse across many paths.
type Matcher struct {
	res []*regexp.Regexp
}

// New compiles patterns into a Matcher. An empty pattern list yields a
// matcher that matches nothing.
func New(patterns []string) (*Matcher, error) {
	m := &Matcher{res: make([]*regexp.Regexp, 0, len(patterns))}

	for _, pattern := range patterns {
		expr, err := translate(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		m.res = append(m.res, re)
	}

	return m, nil
}

// Match reports whether path matches any of the compiled patterns.
func (m *Matcher) Match(path string) bool {
	for _, re := range m.res {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.res)
}

// translate converts a find -path glob into an anchored regexp source.
func translate(pattern string) (string, error) {
	var sb strings.Builder

	sb.WriteString(`\A`)

	for pos := 0; pos < len(pattern); {
		switch c := pattern[pos]; c {
		case '*':
			sb.WriteString(`.*`)
			pos++
		case '?':
			sb.WriteByte('.')
			pos++
		case '\\':
			if pos == len(pattern)-1 {
				return "", errors.New("trailing backslash")
			}

			sb.WriteString(regexp.QuoteMeta(pattern[pos+1 : pos+2]))
			pos += 2
		case '[':
			class, width, err := charClass(pattern[pos:])
			if err != nil {
				return "", err
			}

			sb.WriteString(class)
			pos += width
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
			pos++
		}
	}

	sb.WriteString(`\z`)

	return sb.String(), nil
}

// charClass consumes a [...] class at the start of rest and returns its
// regexp form plus the number of pattern bytes consumed. A leading !
// becomes regexp negation; a ] right after the (possibly negated)
// opening bracket is a literal member.
func charClass(rest string) (string, int, error) {
	idx := 1

	negated := idx < len(rest) && rest[idx] == '!'
	if negated {
		idx++
	}

	if idx < len(rest) && rest[idx] == ']' {
		idx++
	}

	for idx < len(rest) && rest[idx] != ']' {
		idx++
	}

	if idx == len(rest) {
		return "", 0, errors.New("unclosed character class")
	}

	body := rest[1 : idx+1]
	if negated {
		body = "^" + body[1:]
	}

	return "[" + body, idx + 1, nil
}
