// SPDX-License-Identifier: EPL-2.0

// Package effects implements a parametric effects chain: gain, envelope
// follower compression, a five-tap echo reverb and a high-frequency EQ
// blended from a Butterworth high-pass.
//
// The chain is deterministic for given Params. Output never exceeds a
// peak of 0.95.
package effects
