package xpine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const presenterPkg = "com.example.package.ui.main.presenter"

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "{$0$}", Placeholder(0))
	assert.Equal(t, "{$12$}", Placeholder(12))
	assert.True(t, isPlaceholder("{$3$}"))
	assert.False(t, isPlaceholder("{$3$}.ui"))
	assert.False(t, isPlaceholder("{$$}"))
	assert.False(t, isPlaceholder("{$x$}"))
	assert.True(t, hasPlaceholder("a.{$3$}.b"))
	assert.False(t, hasPlaceholder("a.b"))
}

func TestRuleSet_ContainsMatch(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		candidate string
		want      bool
	}{
		{"found", []Rule{{"com.example.package", "REP"}}, presenterPkg, true},
		{"not found", []Rule{{"com.example.package", "REP"}}, "com.kalafior.package.ui.main.presenter", false},
		{"second rule", []Rule{{"com.example.package", "REP"}, {"com.kalafior.package", "KEP"}}, "com.kalafior.package.ui.main.presenter", true},
		{"similar", []Rule{{"com.example.package", "REP"}, {"com.example.package.sample", "KEP"}}, "com.example.package.sample.ui.main.presenter", true},
		{"substring anywhere", []Rule{{"example", "E"}}, presenterPkg, true},
		{"empty match ignored", []Rule{{"", "E"}}, presenterPkg, false},
		{"no rules", nil, presenterPkg, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRuleSet(tt.rules...).ContainsMatch(tt.candidate))
		})
	}
}

func TestRuleSet_Encode(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		candidate string
		want      string
	}{
		{
			name:      "single rule",
			rules:     []Rule{{"com.example.package", "REP"}},
			candidate: "com.example.package.sample.ui.main.presenter",
			want:      "{$0$}.sample.ui.main.presenter",
		},
		{
			name:      "second rule",
			rules:     []Rule{{"com.example.package", "REP"}, {"com.kalafior.package", "KEP"}},
			candidate: "com.kalafior.package.sample.ui.main.presenter",
			want:      "{$1$}.sample.ui.main.presenter",
		},
		{
			name:      "no match",
			rules:     []Rule{{"com.example.package", "REP"}},
			candidate: "com.kalafior.package.sample.ui.main.presenter",
			want:      "com.kalafior.package.sample.ui.main.presenter",
		},
		{
			name:      "longest prefix wins",
			rules:     []Rule{{"com.example.package", "REP"}, {"com.example.package.sample", "KEP"}},
			candidate: "com.example.package.sample.ui.main.presenter",
			want:      "{$1$}.ui.main.presenter",
		},
		{
			name:      "longest prefix wins regardless of order",
			rules:     []Rule{{"com.example.package.sample", "KEP"}, {"com.example.package", "REP"}},
			candidate: "com.example.package.sample.ui.main.presenter",
			want:      "{$0$}.ui.main.presenter",
		},
		{
			name:      "tie goes to earliest",
			rules:     []Rule{{"com.example", "A"}, {"com.example", "B"}},
			candidate: "com.example.ui",
			want:      "{$0$}.ui",
		},
		{
			name:      "match in the middle ignored",
			rules:     []Rule{{"example.package", "REP"}},
			candidate: presenterPkg,
			want:      presenterPkg,
		},
		{
			name:      "first occurrence only",
			rules:     []Rule{{"a.b", "X"}},
			candidate: "a.b.a.b",
			want:      "{$0$}.a.b",
		},
		{
			name:      "whole package",
			rules:     []Rule{{presenterPkg, "P"}},
			candidate: presenterPkg,
			want:      "{$0$}",
		},
		{
			name:      "empty match never selected",
			rules:     []Rule{{"", "E"}},
			candidate: presenterPkg,
			want:      presenterPkg,
		},
		{
			name:      "no rules",
			candidate: presenterPkg,
			want:      presenterPkg,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRuleSet(tt.rules...).Encode(tt.candidate))
		})
	}
}

func TestRuleSet_Decode(t *testing.T) {
	rs := NewRuleSet(
		Rule{"com.example.package", "REP"},
		Rule{"com.kalafior.package", "KEP"},
		Rule{"com.marynata.package", "MEP"},
	)
	tests := []struct {
		name      string
		candidate string
		want      string
	}{
		{"first", "{$0$}.ui.main.presenter", "REP.ui.main.presenter"},
		{"second of many", "{$1$}.ui.main.presenter", "KEP.ui.main.presenter"},
		{"stale index", "{$4$}.ui.main.presenter", "{$4$}.ui.main.presenter"},
		{"no placeholder", "plain.text", "plain.text"},
		{"all occurrences", "{$2$}, x ---> {$2$}", "MEP, x ---> MEP"},
		{"last placeholder wins", "{$0$}.{$1$}", "{$0$}.KEP"},
		{"stale last keeps earlier", "{$0$}.{$9$}", "{$0$}.{$9$}"},
		{"leading zeros", "{$01$}.ui", "KEP.ui"},
		{"huge index", "{$99999999999999999999999$}.ui", "{$99999999999999999999999$}.ui"},
		{"malformed", "{$a$}.ui", "{$a$}.ui"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.Decode(tt.candidate))
		})
	}
}

func TestRuleSet_Decode_Empty(t *testing.T) {
	var rs RuleSet
	assert.Equal(t, "{$0$}.ui", rs.Decode("{$0$}.ui"))
	assert.Equal(t, presenterPkg, rs.Encode(presenterPkg))
}

func TestRuleSet_RoundTrip(t *testing.T) {
	rs := NewRuleSet(Rule{"com.example", "com.example"}, Rule{"org.acme.tools", "org.acme.tools"})
	for _, pkg := range []string{presenterPkg, "org.acme.tools.cli", "net.other"} {
		assert.Equal(t, pkg, rs.Decode(rs.Encode(pkg)))
	}
}

func TestRuleSet_Accessors(t *testing.T) {
	rules := []Rule{{"a", "A"}, {"b", "B"}}
	rs := NewRuleSet(rules...)
	rules[0].Replacement = "mutated"

	assert.Equal(t, 2, rs.Len())
	r, ok := rs.Rule(0)
	require.True(t, ok)
	assert.Equal(t, Rule{"a", "A"}, r)

	_, ok = rs.Rule(2)
	assert.False(t, ok)
	_, ok = rs.Rule(-1)
	assert.False(t, ok)

	got := rs.Rules()
	got[1].Match = "mutated"
	r, _ = rs.Rule(1)
	assert.Equal(t, "b", r.Match)
}

func TestMatchBeginning(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		whole  string
		want   int
	}{
		{"no match", "org.apache.common", presenterPkg, 0},
		{"short match", "com.example.package", presenterPkg, 19},
		{"long match", "com.example.package.sample", presenterPkg, 20},
		{"in the middle", "com.example.package", "org.pl.example.package.ui.main.presenter", 0},
		{"prefix longer than whole", "com.example", "com", 3},
		{"empty prefix", "", presenterPkg, 0},
		{"empty whole", "com", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchBeginning(tt.prefix, tt.whole)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, min(len(tt.prefix), len(tt.whole)))
		})
	}
}
