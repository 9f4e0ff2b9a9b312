package urlinfo

import "testing"

func TestBaseDomain(t *testing.T) {
	cases := map[string]string{
		"localhost":                 "localhost",
		"example.com":               "example.com",
		"a.b.c.example.com":         "example.com",
		"www.example.com":           "example.com",
		"mail.google.com":           "google.com",
	}
	for host, want := range cases {
		if got := BaseDomain(host); got != want {
			t.Errorf("BaseDomain(%q) = %q, want %q", host, got, want)
		}
	}
}

func TestIsAuthLike(t *testing.T) {
	cases := map[string]bool{
		"https://example.com/login-help":        false,
		"https://myaccounts.example.com":         false,
		"https://example.com/LOGIN":              true,
		"https://example.com/login":              true,
		"https://example.com/signin":             true,
		"https://example.com/sign-in":            true,
		"https://example.com/auth":               true,
		"https://example.com/authenticate":       true,
		"https://example.com/sso":                true,
		"https://example.com/oauth":              true,
		"https://example.com/saml":               true,
		"https://login.example.com/":              true,
		"https://accounts.google.com/signin":      true,
		"https://accounts.google.com":             true,
		"https://example.com/dashboard":           false,
		"https://example.com/":                    false,
		"://not a url":                            false,
	}
	for in, want := range cases {
		if got := IsAuthLike(in); got != want {
			t.Errorf("IsAuthLike(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRoot(t *testing.T) {
	if Root("google.com") != "google" {
		t.Fatal("Root(google.com) should be google")
	}
	if Root("localhost") != "localhost" {
		t.Fatal("Root(localhost) should be localhost")
	}
}
