// SPDX-License-Identifier: EPL-2.0

// Package synth composes a short song from lyrics. Words become melody
// notes in the chosen key, a genre picks the drum pattern, and a bass line
// and a pad fill out the mix. All voices are enveloped sine tones at 22050 Hz.
package synth
