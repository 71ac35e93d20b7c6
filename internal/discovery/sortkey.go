package discovery

import (
	"math"
	"strconv"
	"strings"
)

// sequenceKey concatenates every decimal digit of the base filename into a
// single integer, so "img_10.jpg" keys to 10 and sorts after "img_2.jpg".
// A name with no digits keys to 0 and sorts first; a digit run wider than
// an int64 clamps to the maximum and sorts last. Ties fall back to the
// caller's stable sort over listing order.
func sequenceKey(name string) int64 {
	var digits strings.Builder
	for _, r := range name {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	key, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return key
}
