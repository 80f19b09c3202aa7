// Package rng provides the core randomness abstraction for the Skirmish
// combat engine. Every probabilistic decision (hit rolls, damage variance,
// initiative) draws from an injected Source so that callers control
// determinism: tests pass fixed sequences, production passes a crypto-backed
// source.
package rng

import (
	"crypto/rand"
	"encoding/binary"
)

// Source is the randomness provider for combat resolution.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}

// Func adapts a plain function to the Source interface.
type Func func() float64

// Float64 calls the underlying function.
func (f Func) Float64() float64 { return f() }

// cryptoSource implements Source using crypto/rand.
//
// Invariant: all values produced are uniformly distributed in [0, 1).
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: every value returned by Float64 is in [0, 1).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Float64 returns a cryptographically secure random float64 in [0, 1).
// The value is built from 53 random bits so the full float64 mantissa is
// uniformly covered.
//
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	v := binary.BigEndian.Uint64(buf[:]) >> 11 // keep 53 bits
	return float64(v) / (1 << 53)
}

// Sequence returns a Source that yields the given values in order, wrapping
// around when exhausted. Intended for tests and scripted demos.
//
// Precondition: at least one value must be provided; all values in [0, 1).
// Postcondition: the returned Source cycles through values deterministically.
func Sequence(values ...float64) Source {
	if len(values) == 0 {
		panic("rng: Sequence requires at least one value")
	}
	i := 0
	return Func(func() float64 {
		v := values[i%len(values)]
		i++
		return v
	})
}
