package trit

import (
	"math/bits"

	"github.com/klauspost/cpuid/v2"
)

// SIMDMode selects how aggressively ops.go tries to use wide-word paths.
type SIMDMode int

const (
	// SIMDAuto detects CPU capability at package init and picks the
	// fastest available path; this is the default.
	SIMDAuto SIMDMode = iota
	// SIMDOff forces the portable math/bits scalar path regardless of
	// detected CPU features. Useful for producing byte-identical output
	// across heterogeneous fleets, and for tests that assert the scalar
	// and wide paths agree.
	SIMDOff
	// SIMDForce requires a wide-word path; SetSIMDMode panics when it is
	// requested on a CPU without POPCNT.
	SIMDForce
)

// simdMode is process-global: the decision of whether to use the wide
// path is a property of the running binary on the running CPU, not of
// any individual vector or operation. SetSIMDMode overrides the
// auto-detected default.
var simdMode = detectSIMDMode()

func detectSIMDMode() SIMDMode {
	if cpuid.CPU.Supports(cpuid.POPCNT, cpuid.SSE2) {
		return SIMDAuto
	}
	return SIMDOff
}

// SetSIMDMode overrides the package's SIMD dispatch policy. It exists
// mainly for tests that must prove the wide and scalar paths agree bit
// for bit.
func SetSIMDMode(m SIMDMode) {
	if m == SIMDForce && !cpuid.CPU.Supports(cpuid.POPCNT) {
		panic("trit: SIMDForce requested but CPU lacks POPCNT")
	}
	simdMode = m
}

// popcount counts set bits in w. Every CPU Go runs on today exposes a
// hardware POPCNT that math/bits already lowers to, via the compiler
// intrinsic for bits.OnesCount64; simdMode exists so callers can force
// the portable path for cross-platform determinism checks rather than to
// pick between two different implementations here.
func popcount(w uint64) int {
	if simdMode == SIMDOff {
		return onesCountPortable(w)
	}
	return bits.OnesCount64(w)
}

// onesCountPortable is a branch-free SWAR popcount kept byte-identical to
// bits.OnesCount64's result, used when SIMDOff is requested explicitly.
func onesCountPortable(w uint64) int {
	w = w - ((w >> 1) & 0x5555555555555555)
	w = (w & 0x3333333333333333) + ((w >> 2) & 0x3333333333333333)
	w = (w + (w >> 4)) & 0x0f0f0f0f0f0f0f0f
	return int((w * 0x0101010101010101) >> 56)
}
