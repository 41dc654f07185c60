package utils

import (
	"golang.org/x/exp/constraints"
)

// Generates a sequence of n elements given a generation function
func Iota[T any](n int, gen func(int) T) []T {
	values := make([]T, n)

	for i := range values {
		values[i] = gen(i)
	}

	return values
}

// Returns a sequence of n indices
func Indices(n int) []int {
	return Iota(n, func(i int) int { return i })
}

// Returns a copy of a sequence with its items in reverse order
func Reversed[T any](input []T) []T {
	output := make([]T, len(input))

	for i := range input {
		output[len(input)-i-1] = input[i]
	}

	return output
}

// Reduces a sequence to a value given an accumulation function
func Reduce[T any, U any](input []T, foldFunc func(T, U) U) U {
	var result U

	for _, value := range input {
		result = foldFunc(value, result)
	}

	return result
}

// Returns the biggest item of a sequence
func Max[T constraints.Ordered](input []T) T {
	max := input[0]

	for _, item := range input {
		if item > max {
			max = item
		}
	}

	return max
}
