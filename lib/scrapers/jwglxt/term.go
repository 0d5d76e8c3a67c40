package jwglxt

import "time"

// CurrentTerm resolves the academic year and term active at `now`.
// September through December is term 1 of the current year's academic
// year; everything else is term 2 of the academic year that started the
// previous fall.
func CurrentTerm(now time.Time) (year int, term int) {
	month := now.Month()
	if month >= time.September && month <= time.December {
		return now.Year(), 1
	}
	return now.Year() - 1, 2
}

// The portal encodes which half of the academic year is requested with
// a magic query value (term 1 -> 3, term 2 -> 12). Reverse-engineered
// from the live system; kept as a lookup rather than a formula.
var termSelectors = map[int]int{
	1: 3,
	2: 12,
}

func TermSelector(term int) int {
	return termSelectors[term]
}
