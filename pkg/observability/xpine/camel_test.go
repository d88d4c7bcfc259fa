package xpine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCamel(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"advancedHelpers", []string{"advanced", "Helpers"}},
		{"SearchMvpViewPresenterHelper", []string{"Search", "Mvp", "View", "Presenter", "Helper"}},
		{"SppClientDaemonWrapper", []string{"Spp", "Client", "Daemon", "Wrapper"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"parseHTTPRequest", []string{"parse", "HTTP", "Request"}},
		{"utils", []string{"utils"}},
		{"ABc", []string{"ABc"}},
		{"ABCd", []string{"AB", "Cd"}},
		{"A", []string{"A"}},
		{"ABC", []string{"ABC"}},
		{"a1B", []string{"a1", "B"}},
		{"ÄpfelBirne", []string{"Äpfel", "Birne"}},
		{"a\xffB", []string{"a\xff", "B"}},
		{"\xff\xfeAb", []string{"\xff\xfe", "Ab"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCamel(tt.in))
		})
	}
}

func TestCamelSegments_Concatenation(t *testing.T) {
	for _, s := range []string{"advancedHelpers", "XMLHttpRequest", "x", "aBcDeF", "über", "a\xffB", "\xc3Ab", "Ä\xffÖx"} {
		parts := SplitCamel(s)
		assert.Equal(t, s, strings.Join(parts, ""))
		for _, p := range parts {
			assert.NotEmpty(t, p)
		}
	}
}

func TestCamelSegments_EarlyStop(t *testing.T) {
	var got []string
	for seg := range CamelSegments("oneTwoThree") {
		got = append(got, seg)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"one", "Two"}, got)
}

func TestCamelSegments_Reusable(t *testing.T) {
	seq := CamelSegments("oneTwo")
	var first, second []string
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}
	assert.Equal(t, first, second)
}
