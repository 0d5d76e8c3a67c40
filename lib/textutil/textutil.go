package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func CollapseWhitespace(s string) string {
	s = strings.Trim(s, " \n\t")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

var numberRangeRegex = regexp.MustCompile(`(\d+)\s*-\s*(\d+)|(\d+)`)

// ParseNumberRanges expands loose range notation like "1-3,5" into the
// integers it names, in first-seen order with duplicates dropped.
// Reversed bounds ("5-3") are normalized before expansion. Anything that
// is not a number or a range is skipped, so malformed input degrades to
// whatever numbers could still be read out of it.
func ParseNumberRanges(text string) []int {
	result := []int{}
	if text == "" {
		return result
	}

	seen := map[int]bool{}
	emit := func(n int) {
		if seen[n] {
			return
		}
		seen[n] = true
		result = append(result, n)
	}

	for _, m := range numberRangeRegex.FindAllStringSubmatch(text, -1) {
		if m[1] != "" && m[2] != "" {
			start, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			end, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			if start > end {
				start, end = end, start
			}
			for n := start; n <= end; n++ {
				emit(n)
			}
			continue
		}

		n, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		emit(n)
	}

	return result
}

// ParseIntOrRaw keeps all-digit strings as ints and passes everything
// else through untouched, which is how upstream encodes "usually a
// number, occasionally free text" fields.
func ParseIntOrRaw(value string) any {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return value
	}
	return n
}
