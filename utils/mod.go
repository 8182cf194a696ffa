package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func FindIndexFunc[T any](slice []T, match func(T) bool) int {
	for i, v := range slice {
		if match(v) {
			return i
		}
	}
	return -1
}

// Tally counts occurrences and returns the item with the highest count. Ties
// go to the item that appears first in order.
func Tally[T comparable](votes map[T]int, order []T) (T, int) {
	var best T
	bestCount := -1
	for _, item := range order {
		if count := votes[item]; count > bestCount {
			best, bestCount = item, count
		}
	}
	return best, bestCount
}
