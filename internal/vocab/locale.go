// locale.go picks a catalog language from user or system preferences.

package vocab

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/text/language"
)

// Match returns the supported language that best serves prefs, or "" when
// none of them is close enough. Preferences may be BCP 47 tags or POSIX
// locales ("fr_FR.UTF-8").
func (p *Provider) Match(prefs ...string) string {
	var want []language.Tag
	for _, pref := range prefs {
		pref = FromLocale(pref)
		if pref == "" {
			continue
		}
		if key, ok := p.resolve(pref); ok {
			return key
		}
		if tag, err := language.Parse(pref); err == nil {
			want = append(want, tag)
		}
	}
	if len(want) == 0 {
		return ""
	}

	have := make([]language.Tag, len(p.order))
	for i, l := range p.order {
		have[i] = language.Make(l)
	}
	_, idx, conf := language.NewMatcher(have).Match(want...)
	if conf == language.No {
		return ""
	}
	return p.order[idx]
}

// FromLocale converts a POSIX locale such as "pt_BR.UTF-8@euro" into a
// language code. "C" and "POSIX" carry no language and yield "".
func FromLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	switch s {
	case "", "C", "POSIX":
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Closest returns the supported language nearest to code by edit distance.
// Used for "did you mean" hints; it never changes the active language.
func (p *Provider) Closest(code string) string {
	dmp := diffmatchpatch.New()
	code = strings.ToLower(code)

	best, bestDist := "", -1
	for _, l := range p.order {
		d := dmp.DiffLevenshtein(dmp.DiffMain(code, strings.ToLower(l), false))
		if bestDist < 0 || d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}
