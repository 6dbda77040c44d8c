package token

// Scanner attempts to match a prefix of items, returning the number of runes
// consumed on success or zero on failure. Scanners compose: a rule in the
// Tokenizer's rule table is just a Scanner paired with the Type it produces.
type Scanner func(items []rune) uint

// unit matches an exact, fixed sequence of runes.
func unit(chars ...rune) Scanner {
	return func(items []rune) uint {
		if len(items) < len(chars) {
			return 0
		}

		for i, c := range chars {
			if items[i] != c {
				return 0
			}
		}

		return uint(len(chars))
	}
}

// str is a readability wrapper around unit for string literals in rule
// tables.
func str(s string) Scanner {
	return unit([]rune(s)...)
}

// or matches if any one of the given scanners matches, trying them in
// order and returning the first success.
func or(scanners ...Scanner) Scanner {
	return func(items []rune) uint {
		for _, s := range scanners {
			if n := s(items); n > 0 {
				return n
			}
		}

		return 0
	}
}

// within matches a single rune inside an inclusive range.
func within(lowest, highest rune) Scanner {
	return func(items []rune) uint {
		if len(items) != 0 && lowest <= items[0] && items[0] <= highest {
			return 1
		}

		return 0
	}
}

// many matches zero or more repetitions of a scanner, greedily.
func many(s Scanner) Scanner {
	return func(items []rune) uint {
		var index uint

		for index < uint(len(items)) {
			n := s(items[index:])
			if n == 0 {
				break
			}

			index += n
		}

		return index
	}
}

// some matches one or more repetitions of a scanner.
func some(s Scanner) Scanner {
	m := many(s)

	return func(items []rune) uint {
		n := m(items)
		if n == 0 {
			return 0
		}

		return n
	}
}

// seq matches each scanner back-to-back; the whole rule fails (returns 0)
// if any sub-scanner matches nothing.
func seq(scanners ...Scanner) Scanner {
	return func(items []rune) uint {
		var n uint

		for _, s := range scanners {
			m := s(items[n:])
			if m == 0 {
				return 0
			}

			n += m
		}

		return n
	}
}

// optional matches a scanner or, failing that, matches nothing and returns
// 0, which callers cannot tell apart from a failed match.
func optional(s Scanner) Scanner {
	return func(items []rune) uint {
		if n := s(items); n > 0 {
			return n
		}

		return 0
	}
}

// eof matches only when there is nothing left to scan.
func eof() Scanner {
	return func(items []rune) uint {
		if len(items) == 0 {
			return 1
		}

		return 0
	}
}
