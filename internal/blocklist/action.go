package blocklist

import "net/url"

// ResourceType is the kind of request being made.
type ResourceType string

const (
	MainFrame      ResourceType = "main_frame"
	SubFrame       ResourceType = "sub_frame"
	XMLHTTPRequest ResourceType = "xmlhttprequest"
	Other          ResourceType = "other"
)

// ParseResourceType maps a host-supplied type string; unknown values are
// treated as Other.
func ParseResourceType(s string) ResourceType {
	switch ResourceType(s) {
	case MainFrame, SubFrame, XMLHTTPRequest:
		return ResourceType(s)
	default:
		return Other
	}
}

// Kind is what to do with a request.
type Kind int

const (
	Allow Kind = iota
	Redirect
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Redirect:
		return "redirect"
	case Cancel:
		return "cancel"
	default:
		return "allow"
	}
}

// Action is the decision for one request.
type Action struct {
	Kind Kind
	// Site is the listed site that matched, if any.
	Site string
	// RedirectURL is set for Redirect actions.
	RedirectURL string
}

// BlockedPage is the page top-level navigations are redirected to.
const BlockedPage = "blocked.html"

// BlockedPageURL returns the redirect target for a blocked site.
func BlockedPageURL(site string) string {
	return BlockedPage + "?site=" + url.QueryEscape(site)
}

// Check decides what happens to a request. Nothing is blocked while focus
// mode is off. Top-level navigations to a listed site are redirected to the
// blocked page; any other request to it is cancelled.
func (l List) Check(rawURL string, rt ResourceType, focusOn bool) Action {
	if !focusOn || l.Len() == 0 {
		return Action{Kind: Allow}
	}
	site, ok := l.Match(rawURL)
	if !ok {
		return Action{Kind: Allow}
	}
	if rt == MainFrame {
		return Action{Kind: Redirect, Site: site, RedirectURL: BlockedPageURL(site)}
	}
	return Action{Kind: Cancel, Site: site}
}
