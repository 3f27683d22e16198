package vault

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var ErrInvalidURL = errors.New("invalid URL")

// Domain returns the registrable domain (eTLD+1) of rawURL, so that
// "https://login.example.co.uk/x" and "example.co.uk" compare equal.
// IP addresses and single-label hosts are returned unchanged.
func Domain(rawURL string) (string, error) {
	host := hostOf(rawURL)
	if host == "" {
		return "", ErrInvalidURL
	}
	if net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return host, nil
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// host is itself a public suffix
		return host, nil
	}
	return etld1, nil
}

func hostOf(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
}

// MatchURL returns entries whose URL shares the registrable domain of
// rawURL, in vault order. Entries without a URL never match.
func (v *Vault) MatchURL(rawURL string) ([]Entry, error) {
	want, err := Domain(rawURL)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0)
	for _, e := range v.Entries {
		if e.URL == "" {
			continue
		}
		got, err := Domain(e.URL)
		if err != nil {
			continue
		}
		if got == want {
			out = append(out, e)
		}
	}
	return out, nil
}
