package site

import (
	"path"
	"strings"
)

// maxRedirectHops bounds chains such as a -> b -> c.
const maxRedirectHops = 10

// Redirects maps old documentation paths to their replacements. Keys and
// values are paths below /docs, for example "/guides/old" -> "/guides/new".
type Redirects map[string]string

// NewRedirects normalizes the keys and values of raw.
func NewRedirects(raw map[string]string) Redirects {
	r := make(Redirects, len(raw))
	for from, to := range raw {
		r[normalizeDocPath(from)] = normalizeDocPath(to)
	}
	return r
}

// Lookup follows the redirect chain starting at p. It reports false when p
// has no redirect or the chain loops.
func (r Redirects) Lookup(p string) (string, bool) {
	cur := normalizeDocPath(p)
	target, ok := r[cur]
	if !ok {
		return "", false
	}
	for hop := 0; hop < maxRedirectHops; hop++ {
		next, ok := r[target]
		if !ok {
			return target, true
		}
		target = next
	}
	return "", false
}

// normalizeDocPath cleans p and strips page extensions and trailing
// slashes, so "guides/old.html", "/guides/old/" and "/guides/old.md" agree.
func normalizeDocPath(p string) string {
	p = path.Clean("/" + strings.TrimSpace(p))
	p = strings.TrimSuffix(p, ".html")
	p = strings.TrimSuffix(p, ".md")
	if p == "" {
		return "/"
	}
	return p
}
