// Package datrie provides a persistent double-array trie: a compact,
// prefix-shared associative map from byte/rune strings to signed 32-bit
// payloads, backed by an alphamap.AlphaMap alphabet, a darray.DoubleArray
// transition table and a tail.Tail suffix pool.
package datrie

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("datrie")
}

func assert(cond bool, msg string) {
	if !cond {
		panic("datrie: " + msg)
	}
}
