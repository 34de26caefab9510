package patterns

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var ErrPattern = errors.New("invalid pattern")

// Matcher is a compiled address pattern. It is safe for concurrent use.
type Matcher struct {
	source string
	re     *regexp.Regexp
}

// Compile builds a case-insensitive matcher. Unescaped whitespace is dropped
// and an unescaped '#' comments out the rest of its line, so patterns can be
// spread out for readability. "\ " keeps a literal space. The result is not
// anchored: add ^ or $ explicitly.
func Compile(pattern string) (*Matcher, error) {
	re, err := regexp.Compile("(?i)" + stripVerbose(pattern))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrPattern, pattern, err)
	}
	return &Matcher{source: pattern, re: re}, nil
}

func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Matcher) Match(addr string) bool {
	return m.re.MatchString(addr)
}

// MatchesAll reports whether the pattern accepts every address.
func (m *Matcher) MatchesAll() bool {
	return m.re.String() == "(?i)"
}

func (m *Matcher) String() string { return m.source }

func stripVerbose(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	rs := []rune(p)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == '\\' && i+1 < len(rs):
			next := rs[i+1]
			i++
			if unicode.IsSpace(next) {
				b.WriteRune(next)
				continue
			}
			b.WriteRune(r)
			b.WriteRune(next)
		case r == '#':
			for i+1 < len(rs) && rs[i+1] != '\n' {
				i++
			}
		case unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
