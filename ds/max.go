package ds

import (
	"golang.org/x/exp/constraints"
)

// Max returns the largest of its arguments, or the zero value when there are none.
func Max[T constraints.Ordered](ts ...T) T {
	var largest T
	for i, t := range ts {
		if i == 0 || t > largest {
			largest = t
		}
	}
	return largest
}
