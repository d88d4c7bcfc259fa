package xpine

import "strings"

// isVowel 报告 r 是否为需要省略的元音（含 Y）
func isVowel(r rune) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U', 'Y',
		'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// CompressVowels 去掉 segment 中的所有元音（AEIOUY，不区分大小写）
//
// 如果去掉后为空串，返回原始 segment：全元音的段（如 "ui"）必须在 tag 中保持可见。
func CompressVowels(segment string) string {
	compressed := strings.Map(func(r rune) rune {
		if isVowel(r) {
			return -1
		}
		return r
	}, segment)
	if compressed == "" {
		return segment
	}
	return compressed
}
