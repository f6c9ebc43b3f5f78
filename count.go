package autonorm

import "github.com/unixpickle/essentials"

// WordCounts keeps track of how many times different
// words occur in a vocabulary.
type WordCounts map[string]int

// CountWords counts the words in a list.
func CountWords(words []string) WordCounts {
	counts := WordCounts{}
	for _, w := range words {
		counts[w]++
	}
	return counts
}

// Duplicates produces the words which occur more than
// once, from most to least frequent.
// Ties are broken alphabetically.
func (w WordCounts) Duplicates() []string {
	var counts []int
	var words []string
	for word, num := range w {
		if num > 1 {
			words = append(words, word)
			counts = append(counts, num)
		}
	}
	essentials.VoodooSort(counts, func(i, j int) bool {
		if counts[i] == counts[j] {
			return words[i] < words[j]
		}
		return counts[i] > counts[j]
	}, words)
	return words
}

// ExtraRows counts the rows that repeat a word seen on an
// earlier row.
func (w WordCounts) ExtraRows() int {
	var res int
	for _, num := range w {
		res += num - 1
	}
	return res
}
