package orchestrator

import "testing"

func TestHostOf(t *testing.T) {
	cases := map[string]string{
		"https://example.com/path": "example.com",
		"https://a.b.example.com":  "a.b.example.com",
		"not a url at all://::":    "",
	}
	for in, want := range cases {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNextStepsIsNonEmpty(t *testing.T) {
	if len(NextSteps) == 0 {
		t.Fatal("NextSteps must not be empty")
	}
}
