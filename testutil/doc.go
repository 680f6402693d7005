// Package testutil provides testing utilities for nvram.
//
// This package is intended for use in tests only. It provides a seeded,
// thread-safe RNG for filling regions with random field values, so round
// trips can be checked against many inputs while staying reproducible.
//
//	rng := testutil.NewRNG(seed)
//	r.A = rng.Int32()
//	rng.FillBytes(r.Buffer[:])
package testutil
