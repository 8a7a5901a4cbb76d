// Package readtime estimates how long a text takes to read.
package readtime

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultWordsPerMinute is the average adult reading speed used when none is configured.
const DefaultWordsPerMinute = 250

// Words counts whitespace-separated tokens that contain at least one letter or digit,
// so Markdown punctuation such as "#", "-" or "```" does not inflate the estimate.
func Words(text string) int {
	n := 0
	for _, field := range strings.Fields(text) {
		if strings.IndexFunc(field, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) }) >= 0 {
			n++
		}
	}
	return n
}

// Estimate returns the reading time of text in whole seconds, rounded to the nearest second.
func Estimate(text string, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	words := Words(text)
	return (words*60 + wordsPerMinute/2) / wordsPerMinute
}

// Label formats a duration: seconds below one minute, whole minutes (truncated) otherwise.
func Label(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d sec read", seconds)
	}
	return fmt.Sprintf("%d min read", seconds/60)
}
