package xpine

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// placeholderPattern 占位符语法：{$<digits>$}
var placeholderPattern = regexp.MustCompile(`\{\$(\d+)\$\}`)

// Placeholder 返回规则 index 对应的占位符文本
func Placeholder(index int) string {
	return "{$" + strconv.Itoa(index) + "$}"
}

// isPlaceholder 报告 s 是否整体为一个占位符
func isPlaceholder(s string) bool {
	loc := placeholderPattern.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

// Rule 包名替换规则
type Rule struct {
	// Match 需要匹配的包名前缀
	Match string
	// Replacement 解码时替换占位符的文本
	Replacement string
}

// RuleSet 有序、不可变的替换规则集合
//
// 下标即优先级：编码时长度相同的前缀取下标最小的规则。
// 零值为空规则集，Encode/Decode 为恒等变换。
type RuleSet struct {
	rules []Rule
}

// NewRuleSet 基于 rules 的副本创建规则集
func NewRuleSet(rules ...Rule) RuleSet {
	return RuleSet{rules: slices.Clone(rules)}
}

// Len 返回规则数量
func (rs RuleSet) Len() int {
	return len(rs.rules)
}

// Rule 返回下标 index 处的规则
func (rs RuleSet) Rule(index int) (Rule, bool) {
	if index < 0 || index >= len(rs.rules) {
		return Rule{}, false
	}
	return rs.rules[index], true
}

// Rules 返回全部规则的副本
func (rs RuleSet) Rules() []Rule {
	return slices.Clone(rs.rules)
}

// ContainsMatch 报告 candidate 是否包含任一规则的 Match（任意位置）
func (rs RuleSet) ContainsMatch(candidate string) bool {
	for _, r := range rs.rules {
		if r.Match != "" && strings.Contains(candidate, r.Match) {
			return true
		}
	}
	return false
}

// Encode 将命中的包名前缀替换为占位符
//
// 只考虑作为 candidate 前缀的规则，选择最长者；长度相同时取最早注册的规则。
// 命中时把该 Match 的第一次出现替换为 {$<index>$}，否则原样返回。
func (rs RuleSet) Encode(candidate string) string {
	best, bestLen := -1, 0
	for i, r := range rs.rules {
		n := MatchBeginning(r.Match, candidate)
		if n == len(r.Match) && n > bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return candidate
	}
	return strings.Replace(candidate, rs.rules[best].Match, Placeholder(best), 1)
}

// Decode 将占位符替换为对应规则的 Replacement
//
// 扫描全部占位符并取最后一个；若其下标有对应规则，替换该占位符文本的所有出现。
// 下标越界（过期占位符）时原样返回，不视为错误。
func (rs RuleSet) Decode(candidate string) string {
	matches := placeholderPattern.FindAllStringSubmatch(candidate, -1)
	if len(matches) == 0 {
		return candidate
	}
	last := matches[len(matches)-1]
	index, err := strconv.Atoi(last[1])
	if err != nil {
		// 超出 int 范围的下标不可能对应规则
		return candidate
	}
	r, ok := rs.Rule(index)
	if !ok {
		return candidate
	}
	return strings.ReplaceAll(candidate, last[0], r.Replacement)
}

// hasPlaceholder 报告 s 是否仍含有占位符
func hasPlaceholder(s string) bool {
	return placeholderPattern.MatchString(s)
}

// MatchBeginning 返回 prefix 与 whole 开头相同的字节数
//
// prefix 完整出现在 whole 开头时返回值等于 len(prefix)。
// 只比较开头，prefix 出现在 whole 中间不计入。
func MatchBeginning(prefix, whole string) int {
	n := min(len(prefix), len(whole))
	i := 0
	for i < n && prefix[i] == whole[i] {
		i++
	}
	return i
}
