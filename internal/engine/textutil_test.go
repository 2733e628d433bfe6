package engine

import "testing"

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{7.9, "00:07"},
		{65, "01:05"},
		{599.5, "09:59"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{-5, "00:00"},
	}
	for _, c := range cases {
		if got := FormatTimestamp(c.seconds); got != c.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestCleanHTML(t *testing.T) {
	if got := CleanHTML("  <b>hello</b> <i>world</i>  "); got != "hello world" {
		t.Errorf("CleanHTML = %q", got)
	}
	if got := CleanHTML("plain"); got != "plain" {
		t.Errorf("CleanHTML = %q", got)
	}
}
