package samples

import "iter"

// Zip pairs as and bs positionally and stops as soon as either is exhausted.
// Elements are pulled only when the consumer asks for the next pair.
func Zip[A, B any](as iter.Seq[A], bs iter.Seq[B]) iter.Seq2[A, B] {
	return func(yield func(A, B) bool) {
		nextB, stop := iter.Pull(bs)
		defer stop()

		for a := range as {
			b, ok := nextB()
			if !ok {
				return
			}
			if !yield(a, b) {
				return
			}
		}
	}
}

// Repeat yields each word as many times in a row as its paired count.
// A count of zero or less drops the word.
func Repeat(words iter.Seq[string], counts iter.Seq[int]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for w, n := range Zip(words, counts) {
			for range n {
				if !yield(w) {
					return
				}
			}
		}
	}
}
