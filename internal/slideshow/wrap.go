package slideshow

import (
	"strings"
	"unicode/utf8"
)

// WrapText 按字符数贪心折行。一个词只有在 当前行长度+词长度 < maxChars 时才拼到当前行，
// 否则另起一行。只在词边界断行，超长的单词独占一行、不拆分。
// 词按单个空格切分，连续空格保留在行内。
func WrapText(text string, maxChars int) []string {
	words := strings.Split(text, " ")
	lines := make([]string, 0, 1)

	var current strings.Builder
	currentLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if currentLen+wordLen < maxChars {
			if currentLen > 0 {
				current.WriteByte(' ')
				currentLen++
			}
			current.WriteString(word)
			currentLen += wordLen
			continue
		}

		if currentLen > 0 {
			lines = append(lines, current.String())
		}
		current.Reset()
		current.WriteString(word)
		currentLen = wordLen
	}
	if currentLen > 0 {
		lines = append(lines, current.String())
	}

	return lines
}
