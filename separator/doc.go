// SPDX-License-Identifier: EPL-2.0

// Package separator splits a mono mix into four approximate stems.
//
// Drums are the percussive half of a median-filter harmonic/percussive
// separation (kernel 31, margin 2). Vocals and bass are band-limited copies
// of the harmonic half, and other is what remains after subtracting the
// three from the input. The residual is not a modelled source; it can carry
// more energy than the input where the masks overlap.
//
//	set, err := separator.New().Separate(buf)
//	if err != nil {
//	    return err
//	}
//	err = separator.Save(set, separator.DefaultOutputDir(path), separator.SourceName(path))
package separator
