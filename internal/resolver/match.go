// match.go implements the vocabulary half of suggestion matching.

package resolver

import (
	"strings"

	"github.com/jpl-au/tagger/internal/vocab"
)

// separators may follow the namespace token in a namespaced query
// ("weblit-sea", "weblit:sea", "weblit sea").
const separators = "-:_ "

// matcher is a case-insensitive literal substring predicate over one
// fragment. A fragment that starts with the vocabulary namespace is also
// tested against term identifiers, so typing the namespace browses the
// controlled terms only.
type matcher struct {
	frag    string
	ns      string
	nsQuery bool
	local   string // fragment with the namespace and one separator removed
}

func newMatcher(text, namespace string) matcher {
	m := matcher{frag: strings.ToLower(text), ns: strings.ToLower(namespace)}
	if m.ns != "" && strings.HasPrefix(m.frag, m.ns) {
		m.nsQuery = true
		m.local = trimSeparator(m.frag[len(m.ns):])
	}
	return m
}

func (m matcher) match(t vocab.Term) bool {
	if strings.Contains(strings.ToLower(t.Label), m.frag) {
		return true
	}
	if !m.nsQuery {
		return false
	}
	id := strings.ToLower(t.ID)
	if strings.Contains(id, m.frag) {
		return true
	}
	return strings.Contains(m.localPart(id), m.local)
}

// localPart strips the namespace and its separator from an identifier.
func (m matcher) localPart(id string) string {
	if !strings.HasPrefix(id, m.ns) {
		return id
	}
	return trimSeparator(id[len(m.ns):])
}

func trimSeparator(s string) string {
	if s != "" && strings.IndexByte(separators, s[0]) >= 0 {
		return s[1:]
	}
	return s
}
