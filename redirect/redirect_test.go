package redirect

import "testing"

func TestClassifyNone(t *testing.T) {
	v := Classify("https://example.com/", "example.com", "https://example.com/", "example.com")
	if v.Kind != KindNone {
		t.Fatalf("expected KindNone, got %v", v.Kind)
	}
}

func TestClassifyPermanent(t *testing.T) {
	v := Classify("https://gmail.com", "gmail.com", "https://mail.google.com/", "mail.google.com")
	if v.Kind != KindPermanent {
		t.Fatalf("expected KindPermanent, got %v", v.Kind)
	}
	if v.NewHost != "mail.google.com" {
		t.Fatalf("expected new host mail.google.com, got %s", v.NewHost)
	}
}

func TestClassifyRequestedAuth(t *testing.T) {
	v := Classify(
		"https://accounts.google.com/signin", "accounts.google.com",
		"https://accounts.google.com/signin", "accounts.google.com",
	)
	if v.Kind != KindRequestedAuth {
		t.Fatalf("expected KindRequestedAuth, got %v", v.Kind)
	}
}

func TestClassifyCrossDomainAuth(t *testing.T) {
	v := Classify(
		"https://app.company.com/dashboard", "app.company.com",
		"https://login.microsoftonline.com/oauth", "login.microsoftonline.com",
	)
	if v.Kind != KindAuth {
		t.Fatalf("expected KindAuth, got %v", v.Kind)
	}
	if v.Flow != CrossDomain {
		t.Fatalf("expected CrossDomain flow, got %v", v.Flow)
	}
}

func TestClassifySameDomainAuthPath(t *testing.T) {
	v := Classify(
		"https://example.com/dashboard", "example.com",
		"https://example.com/login", "example.com",
	)
	if v.Kind != KindAuth {
		t.Fatalf("expected KindAuth, got %v", v.Kind)
	}
	if v.Flow != SameDomainPath {
		t.Fatalf("expected SameDomainPath flow, got %v", v.Flow)
	}
}
