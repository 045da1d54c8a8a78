package blocklist

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"reddit.com", "reddit.com", false},
		{"  Reddit.COM ", "reddit.com", false},
		{"www.youtube.com", "youtube.com", false},
		{"bücher.de", "xn--bcher-kva.de", false},
		{"https://reddit.com", "", true},
		{"reddit.com/r/golang", "", true},
		{"", "", true},
		{"   ", "", true},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSite) {
				t.Errorf("Normalize(%q) err = %v, want ErrInvalidSite", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Normalize(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_DropsInvalidAndDuplicates(t *testing.T) {
	l, rejected := New([]string{"reddit.com", "www.reddit.com", "http://x.com", "netflix.com"})
	if diff := cmp.Diff([]string{"reddit.com", "netflix.com"}, l.Sites()); diff != "" {
		t.Errorf("sites (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"http://x.com"}, rejected); diff != "" {
		t.Errorf("rejected (-want +got):\n%s", diff)
	}
}

func TestAddRemove(t *testing.T) {
	l, _ := New(DefaultSites())
	if l.Len() != 5 {
		t.Fatalf("default list has %d sites, want 5", l.Len())
	}

	added, err := l.Add("YouTube.com")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added.Contains("youtube.com") {
		t.Error("added list should contain youtube.com")
	}
	if l.Contains("youtube.com") {
		t.Error("Add mutated the original list")
	}

	same, err := added.Add("www.youtube.com")
	if err != nil {
		t.Fatalf("Add duplicate: %v", err)
	}
	if same.Len() != added.Len() {
		t.Errorf("duplicate add changed length to %d", same.Len())
	}

	if _, err := l.Add("https://bad.com"); !errors.Is(err, ErrInvalidSite) {
		t.Errorf("Add(url) err = %v, want ErrInvalidSite", err)
	}

	removed := added.Remove("reddit.com")
	if removed.Contains("reddit.com") {
		t.Error("Remove left reddit.com")
	}
	if !added.Contains("reddit.com") {
		t.Error("Remove mutated the original list")
	}
}

func TestMatch(t *testing.T) {
	l, _ := New([]string{"reddit.com", "news.bbc.co.uk"})
	tests := []struct {
		url  string
		site string
		ok   bool
	}{
		{"https://reddit.com/", "reddit.com", true},
		{"https://www.reddit.com/r/golang", "reddit.com", true},
		{"https://old.reddit.com/", "reddit.com", true},
		{"https://notreddit.com/", "", false},
		{"https://news.bbc.co.uk/sport", "news.bbc.co.uk", true},
		{"https://www.news.bbc.co.uk/", "news.bbc.co.uk", true},
		{"https://live.news.bbc.co.uk/", "", false},
		{"chrome-extension://abc/reddit.com", "", false},
		{"::not a url", "", false},
	}
	for _, tt := range tests {
		site, ok := l.Match(tt.url)
		if ok != tt.ok || site != tt.site {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.url, site, ok, tt.site, tt.ok)
		}
	}
}

func TestCheck(t *testing.T) {
	l, _ := New([]string{"reddit.com"})

	if a := l.Check("https://reddit.com/", MainFrame, false); a.Kind != Allow {
		t.Errorf("focus off: kind = %v, want allow", a.Kind)
	}

	a := l.Check("https://www.reddit.com/", MainFrame, true)
	if a.Kind != Redirect {
		t.Fatalf("main frame: kind = %v, want redirect", a.Kind)
	}
	if a.RedirectURL != "blocked.html?site=reddit.com" {
		t.Errorf("RedirectURL = %q", a.RedirectURL)
	}

	if a := l.Check("https://reddit.com/api", XMLHTTPRequest, true); a.Kind != Cancel {
		t.Errorf("xhr: kind = %v, want cancel", a.Kind)
	}
	if a := l.Check("https://golang.org/", MainFrame, true); a.Kind != Allow {
		t.Errorf("unlisted: kind = %v, want allow", a.Kind)
	}
}

func TestParseResourceType(t *testing.T) {
	if got := ParseResourceType("main_frame"); got != MainFrame {
		t.Errorf("got %q", got)
	}
	if got := ParseResourceType("image"); got != Other {
		t.Errorf("unknown type = %q, want other", got)
	}
}

func TestPatterns(t *testing.T) {
	l, _ := New([]string{"reddit.com", "news.bbc.co.uk"})
	want := []string{
		"*://reddit.com/*",
		"*://www.reddit.com/*",
		"*://*.reddit.com/*",
		"http://reddit.com/*",
		"https://reddit.com/*",
		"http://www.reddit.com/*",
		"https://www.reddit.com/*",
		"*://news.bbc.co.uk/*",
		"*://www.news.bbc.co.uk/*",
		"http://news.bbc.co.uk/*",
		"https://news.bbc.co.uk/*",
		"http://www.news.bbc.co.uk/*",
		"https://www.news.bbc.co.uk/*",
	}
	if diff := cmp.Diff(want, l.Patterns()); diff != "" {
		t.Errorf("patterns (-want +got):\n%s", diff)
	}
}

func TestBlockedPageURL_Escapes(t *testing.T) {
	if got := BlockedPageURL("a b&c"); got != "blocked.html?site=a+b%26c" {
		t.Errorf("BlockedPageURL = %q", got)
	}
}
