// Package wordlist provides word list filtering helpers.
package wordlist

import "unicode"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Speakable keeps single words made of letters only, which is what a speech
// recognizer hands back for one spoken word.
func Speakable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
