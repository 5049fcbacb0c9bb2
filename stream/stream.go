package stream

import (
	"iter"
)

// Just returns a iter.Seq2 that emits the provided values in order.
func Just[T any](values ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Error returns a iter.Seq2 that emits the provided error.
func Error[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		yield(*new(T), err)
	}
}

// Filter returns a iter.Seq2 that emits only the values from the input stream
// that satisfy the given predicate function. Errors are always emitted.
func Filter[T any](stream iter.Seq2[T, error], predicate func(T) bool) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v, err := range stream {
			if err != nil {
				yield(*new(T), err)
				return
			}
			if predicate(v) && !yield(v, nil) {
				return
			}
		}
	}
}

// Map returns a iter.Seq2 that emits the results of applying the given mapper
// function to each value from the input stream.
func Map[T, R any](stream iter.Seq2[T, error], mapper func(T) (R, error)) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		for v, err := range stream {
			if err != nil {
				yield(*new(R), err)
				return
			}
			mapped, err := mapper(v)
			if err != nil {
				yield(*new(R), err)
				return
			}
			if !yield(mapped, nil) {
				return
			}
		}
	}
}

// Collect drains the stream into a slice, stopping at the first error.
func Collect[T any](stream iter.Seq2[T, error]) ([]T, error) {
	var values []T
	for v, err := range stream {
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}
