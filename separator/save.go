// SPDX-License-Identifier: EPL-2.0

package separator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/formats/wav"
)

// DefaultOutputDir is the stems directory next to the source file.
func DefaultOutputDir(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), "stems")
}

// SourceName is the file name of path without directory or extension.
func SourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Save writes each stem as 16-bit WAV to outDir/sourceName/<stem>.wav and
// records the path on the stem. The first failure aborts with a KindEncode
// error.
func Save(set *StemSet, outDir, sourceName string) error {
	dir := filepath.Join(outDir, sourceName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return audio.NewError(audio.KindEncode, "save stems", "Stem separation failed",
			fmt.Errorf("%w: %w", audio.ErrEncode, err))
	}

	for _, st := range set.All() {
		path := filepath.Join(dir, st.Name+".wav")
		if err := wav.WriteFile(path, st.Buffer); err != nil {
			return audio.NewError(audio.KindEncode, "save stems", "Stem separation failed",
				fmt.Errorf("%s: %w", st.Name, err))
		}
		st.Path = path
	}

	return nil
}
