package utils

import "sort"

// Generates a sequence constructed by applying a function to all elements of a given input sequence
func Map[T any, U any](input []T, mapFunction func(T) U) []U {
	output := make([]U, len(input))

	for i := range input {
		output[i] = mapFunction(input[i])
	}

	return output
}

// Returns the items of a sequence that satisfy a predicate, preserving their order
func Filter[T any](input []T, predicate func(T) bool) []T {
	output := make([]T, 0, len(input))

	for _, item := range input {
		if predicate(item) {
			output = append(output, item)
		}
	}

	return output
}

// Returns true if the sequence contains the given item
func Contains[T comparable](input []T, item T) bool {
	for _, value := range input {
		if value == item {
			return true
		}
	}

	return false
}

// Returns an array with all the keys of a map, sorted
func SortedKeys[Key interface {
	comparable
	~string
}, Value any](input map[Key]Value) []Key {
	keys := make([]Key, 0, len(input))

	for key := range input {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}
