// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ellipsis добавляется к обрезанным строкам
const Ellipsis = "..."

// TruncateLabel оставляет первые budget символов строки и добавляет "...",
// если строка длиннее. Длина считается в символах, а не в байтах.
func TruncateLabel(s string, budget int) string {
	if budget < 0 || utf8.RuneCountInString(s) <= budget {
		return s
	}
	runes := []rune(s)
	return string(runes[:budget]) + Ellipsis
}

// PadRight дополняет строку пробелами до width символов
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// FormatCount форматирует количество песен с правильным окончанием
func FormatCount(n int) string {
	word := "песен"
	switch {
	case n%100 >= 11 && n%100 <= 14:
	case n%10 == 1:
		word = "песня"
	case n%10 >= 2 && n%10 <= 4:
		word = "песни"
	}
	return fmt.Sprintf("%d %s", n, word)
}
