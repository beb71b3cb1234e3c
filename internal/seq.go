// Package internal holds iterator helpers shared by the bitvec packages.
package internal

import (
	"iter"
)

// Chain yields every element of each sequence in turn.
func Chain[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Chain2 is Chain for key/value sequences. Duplicate keys are yielded
// as they come; consumers building a map keep the last.
func Chain2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}
