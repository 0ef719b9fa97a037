package browser

import (
	"errors"
	"strings"
	"testing"
)

func TestFindChromeBinary_Configured(t *testing.T) {
	if got := findChromeBinary("/opt/chrome/chrome"); got != "/opt/chrome/chrome" {
		t.Errorf("expected configured path to win, got %q", got)
	}
}

func TestDisplayBinary(t *testing.T) {
	if got := displayBinary(""); got != "(chromedp default)" {
		t.Errorf("got %q", got)
	}
	if got := displayBinary("/usr/bin/chromium"); got != "/usr/bin/chromium" {
		t.Errorf("got %q", got)
	}
}

func TestIsDetached(t *testing.T) {
	tests := []struct {
		err  string
		want bool
	}{
		{"Execution context was destroyed.", true},
		{"Cannot find context with specified id", true},
		{"Could not find node with given id", true},
		{"net::ERR_CONNECTION_REFUSED", false},
		{"context deadline exceeded", false},
	}
	for _, tt := range tests {
		if got := isDetached(errors.New(tt.err)); got != tt.want {
			t.Errorf("isDetached(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestFirstVisibleJSChecksFirstMatchOnly(t *testing.T) {
	for _, want := range []string{
		"XPathResult.FIRST_ORDERED_NODE_TYPE",
		".singleNodeValue",
		"getClientRects().length === 0",
	} {
		if !strings.Contains(firstVisibleJS, want) {
			t.Errorf("visibility script missing %q", want)
		}
	}
	for _, banned := range []string{"SNAPSHOT", "ITERATOR", "querySelectorAll"} {
		if strings.Contains(firstVisibleJS, banned) {
			t.Errorf("visibility script must not look past the first match, found %q", banned)
		}
	}
	if !strings.HasPrefix(firstVisibleJS, "function(xpath)") {
		t.Error("visibility script must take the XPath as its argument")
	}
}
