// Package blocklist holds the set of distracting sites and decides what
// happens to a request for one of them while focus mode is on.
package blocklist

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/idna"
)

// ErrInvalidSite is returned for entries that are not bare domain names.
var ErrInvalidSite = errors.New("invalid site")

var defaultSites = []string{
	"instagram.com",
	"reddit.com",
	"netflix.com",
	"twitter.com",
	"facebook.com",
}

// DefaultSites returns the sites blocked on a fresh install.
func DefaultSites() []string {
	return slices.Clone(defaultSites)
}

// Normalize turns user input into the canonical stored form: trimmed,
// lowercased, without a leading "www." and in ASCII (punycode) form.
// Full URLs and entries with paths are rejected.
func Normalize(site string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(site))
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSite)
	}
	if strings.Contains(s, "://") || strings.Contains(s, "/") {
		return "", fmt.Errorf("%w: %q is not a bare domain", ErrInvalidSite, site)
	}
	s = strings.TrimPrefix(s, "www.")

	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidSite, site, err)
	}
	return ascii, nil
}

// List is an immutable, ordered, duplicate-free set of normalized sites.
// The zero value is an empty list.
type List struct {
	sites []string
}

// New builds a list from raw entries. Invalid entries are dropped and
// returned separately so callers can report them.
func New(entries []string) (List, []string) {
	var l List
	var rejected []string
	for _, e := range entries {
		s, err := Normalize(e)
		if err != nil {
			rejected = append(rejected, e)
			continue
		}
		if !slices.Contains(l.sites, s) {
			l.sites = append(l.sites, s)
		}
	}
	return l, rejected
}

// Sites returns a copy of the normalized entries in insertion order.
func (l List) Sites() []string {
	return slices.Clone(l.sites)
}

// Len reports the number of sites.
func (l List) Len() int { return len(l.sites) }

// Contains reports whether site (in any accepted input form) is listed.
func (l List) Contains(site string) bool {
	s, err := Normalize(site)
	if err != nil {
		return false
	}
	return slices.Contains(l.sites, s)
}

// Add returns a list with site appended. Adding a listed site is a no-op.
func (l List) Add(site string) (List, error) {
	s, err := Normalize(site)
	if err != nil {
		return l, err
	}
	if slices.Contains(l.sites, s) {
		return l, nil
	}
	out := make([]string, len(l.sites), len(l.sites)+1)
	copy(out, l.sites)
	return List{sites: append(out, s)}, nil
}

// Remove returns a list without site.
func (l List) Remove(site string) List {
	s, err := Normalize(site)
	if err != nil {
		return l
	}
	out := make([]string, 0, len(l.sites))
	for _, existing := range l.sites {
		if existing != s {
			out = append(out, existing)
		}
	}
	return List{sites: out}
}

// Match returns the listed site a URL belongs to. A host matches a site
// when it is the site itself, its www. form, or, for two-label sites such
// as reddit.com, any subdomain of it. Extension URLs and unparseable URLs
// never match.
func (l List) Match(rawURL string) (string, bool) {
	if strings.HasPrefix(rawURL, "chrome-extension://") {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", false
	}
	for _, site := range l.sites {
		if matchesHost(host, site) {
			return site, true
		}
	}
	return "", false
}

func matchesHost(host, site string) bool {
	if host == site || host == "www."+site {
		return true
	}
	return isTwoLabel(site) && strings.HasSuffix(host, "."+site)
}

func isTwoLabel(site string) bool {
	return strings.Count(site, ".") == 1
}

// Patterns returns the host URL match patterns for every listed site,
// deduplicated and in a stable order.
func (l List) Patterns() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, site := range l.sites {
		add("*://" + site + "/*")
		add("*://www." + site + "/*")
		if isTwoLabel(site) {
			add("*://*." + site + "/*")
		}
		add("http://" + site + "/*")
		add("https://" + site + "/*")
		add("http://www." + site + "/*")
		add("https://www." + site + "/*")
	}
	return out
}
