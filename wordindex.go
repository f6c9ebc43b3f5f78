package autonorm

// A WordIndex maps words to the row where they first
// appear in some list of words.
type WordIndex map[string]int

// NewWordIndex indexes the words.
// When a word occurs more than once, its first row wins.
func NewWordIndex(words []string) WordIndex {
	res := make(WordIndex, len(words))
	for i, w := range words {
		if _, ok := res[w]; !ok {
			res[w] = i
		}
	}
	return res
}

// Row returns the row for the word, if there is one.
func (w WordIndex) Row(word string) (int, bool) {
	row, ok := w[word]
	return row, ok
}

// Contains checks if the word is indexed.
func (w WordIndex) Contains(word string) bool {
	_, ok := w[word]
	return ok
}

// Mask reports, for each word in the list, whether that
// word is indexed.
func (w WordIndex) Mask(words []string) []bool {
	res := make([]bool, len(words))
	for i, word := range words {
		res[i] = w.Contains(word)
	}
	return res
}
