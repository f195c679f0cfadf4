// SPDX-License-Identifier: EPL-2.0

// Package mastering measures a spectral loudness proxy, applies the makeup
// gain needed to reach a target and soft-limits the result.
//
// The measurement is the mean per-frame spectral power in dB. It is labelled
// LUFS for compatibility with existing consumers but is not a perceptual
// loudness measure.
package mastering
