package xpine

import (
	"iter"
	"slices"
	"unicode"
)

// CamelSegments 按大小写转换边界切分标识符
//
// 位置 i（i > 0）为边界，当 id[i] 为大写且满足以下任一条件：
//   - id[i-1] 不是大写
//   - id[i-1] 是大写、不是首字符，且 id[i+1] 是小写（缩写词结束，如 "HTTPServer"）
//
// 返回的序列是惰性的，可重复遍历；各段非空，拼接后等于原输入。
func CamelSegments(identifier string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if identifier == "" {
			return
		}
		// 非法 UTF-8 字节按宽度 1 的 U+FFFD 处理，切分使用真实字节偏移
		offsets := make([]int, 0, len(identifier))
		runes := make([]rune, 0, len(identifier))
		for off, r := range identifier {
			offsets = append(offsets, off)
			runes = append(runes, r)
		}
		start := 0
		for i := 1; i < len(runes); i++ {
			if !isCamelBoundary(runes, i) {
				continue
			}
			if !yield(identifier[start:offsets[i]]) {
				return
			}
			start = offsets[i]
		}
		yield(identifier[start:])
	}
}

// SplitCamel 返回 CamelSegments 的全部分段
func SplitCamel(identifier string) []string {
	return slices.Collect(CamelSegments(identifier))
}

func isCamelBoundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}
	if !unicode.IsUpper(runes[i-1]) {
		return true
	}
	return i-1 != 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
