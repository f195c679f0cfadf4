// SPDX-License-Identifier: EPL-2.0

package separator

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audproc/audio"
	"github.com/ik5/audproc/dsp"
	"github.com/ik5/audproc/formats/wav"
	"github.com/ik5/audproc/internal/audiotest"
	"github.com/ik5/audproc/utils"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newQuiet(opts ...Option) *Separator {
	return New(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func TestSeparate_Silence(t *testing.T) {
	t.Parallel()

	set, err := newQuiet().Separate(audiotest.Silence(22050, 22050))
	if err != nil {
		t.Fatalf("Separate() error = %v", err)
	}

	floor := 20 * math.Log10(1e-8)
	for _, st := range set.All() {
		if !st.Buffer.IsSilent() {
			t.Errorf("%s stem is not silent", st.Name)
		}
		if st.RMSDB != floor {
			t.Errorf("%s RMSDB = %g, want %g", st.Name, st.RMSDB, floor)
		}
		if math.IsInf(st.RMSDB, 0) || math.Abs(st.RMSDB+160) > 1e-9 {
			t.Errorf("%s RMSDB = %g, want -160", st.Name, st.RMSDB)
		}
	}
}

func TestSeparate_ShapeAndResidual(t *testing.T) {
	t.Parallel()

	buf := audiotest.Sine(22050, 440, 1, 0.3)
	for i := 0; i < buf.Len(); i += 5512 {
		buf.Samples[i] += 0.5
	}

	set, err := newQuiet().Separate(buf)
	if err != nil {
		t.Fatalf("Separate() error = %v", err)
	}

	stems := set.All()
	for i, st := range stems {
		if st.Name != Names[i] {
			t.Errorf("stem %d name = %q, want %q", i, st.Name, Names[i])
		}
		if st.Buffer.Len() != buf.Len() || st.Buffer.SampleRate != buf.SampleRate {
			t.Errorf("%s: %d samples at %d Hz, want %d at %d",
				st.Name, st.Buffer.Len(), st.Buffer.SampleRate, buf.Len(), buf.SampleRate)
		}
		if st.Duration != 1 {
			t.Errorf("%s duration = %g, want 1", st.Name, st.Duration)
		}
	}

	for i, x := range buf.Samples {
		sum := set.Vocals.Buffer.Samples[i] + set.Bass.Buffer.Samples[i] +
			set.Drums.Buffer.Samples[i] + set.Other.Buffer.Samples[i]
		if math.Abs(sum-x) > 1e-9 {
			t.Fatalf("sample %d: stems sum to %g, want %g", i, sum, x)
		}
	}
}

func TestSeparate_ToneIsVocalBand(t *testing.T) {
	t.Parallel()

	set, err := newQuiet().Separate(audiotest.Sine(22050, 440, 1, 0.5))
	if err != nil {
		t.Fatalf("Separate() error = %v", err)
	}

	if set.Vocals.RMSDB <= set.Bass.RMSDB+10 {
		t.Errorf("vocals %g dB not well above bass %g dB for a 440 Hz tone", set.Vocals.RMSDB, set.Bass.RMSDB)
	}
	if set.Vocals.RMSDB <= set.Drums.RMSDB {
		t.Errorf("vocals %g dB not above drums %g dB for a steady tone", set.Vocals.RMSDB, set.Drums.RMSDB)
	}
}

func TestSeparate_JointNormalization(t *testing.T) {
	t.Parallel()

	set, err := newQuiet().Separate(audiotest.Sine(22050, 440, 1, 4))
	if err != nil {
		t.Fatalf("Separate() error = %v", err)
	}

	var peak float64
	for _, st := range set.All() {
		peak = math.Max(peak, st.Buffer.Peak())
	}

	if want := 1 / 1.05; math.Abs(peak-want) > 1e-12 {
		t.Errorf("joint peak = %g, want %g", peak, want)
	}
}

func TestSeparate_DegenerateInput(t *testing.T) {
	t.Parallel()

	_, err := newQuiet().Separate(audio.NewBuffer(nil, 22050))
	if got := audio.KindOf(err); got != audio.KindDegenerateInput {
		t.Errorf("KindOf() = %v, want %v", got, audio.KindDegenerateInput)
	}
	if got := audio.ContextOf(err, ""); got != "Stem separation failed" {
		t.Errorf("ContextOf() = %q", got)
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	set, err := newQuiet(WithKernel(5)).Separate(audiotest.Sine(8000, 300, 0.5, 0.5))
	if err != nil {
		t.Fatalf("Separate() error = %v", err)
	}

	out := t.TempDir()
	if err := Save(set, out, "song"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	for _, st := range set.All() {
		want := filepath.Join(out, "song", st.Name+".wav")
		if st.Path != want {
			t.Errorf("%s path = %q, want %q", st.Name, st.Path, want)
		}
		back, err := wav.ReadFile(want)
		if err != nil {
			t.Errorf("%s: %v", st.Name, err)
			continue
		}
		if back.Len() != st.Buffer.Len() || back.SampleRate != 8000 {
			t.Errorf("%s read back %d samples at %d Hz", st.Name, back.Len(), back.SampleRate)
		}
	}
}

func TestSave_Unwritable(t *testing.T) {
	t.Parallel()

	// a regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "stems")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	set := &StemSet{}
	for i, st := range set.All() {
		*st = newStem(Names[i], make([]float64, 10), 8000)
	}

	err := Save(set, blocker, "song")
	if got := audio.KindOf(err); got != audio.KindEncode {
		t.Errorf("KindOf() = %v, want %v", got, audio.KindEncode)
	}
}

func TestPaths(t *testing.T) {
	t.Parallel()

	if got, want := DefaultOutputDir("/music/album/track.mp3"), "/music/album/stems"; got != want {
		t.Errorf("DefaultOutputDir() = %q, want %q", got, want)
	}
	if got := SourceName("/music/album/my.track.wav"); got != "my.track" {
		t.Errorf("SourceName() = %q, want %q", got, "my.track")
	}
}

func TestNewStem_RMS(t *testing.T) {
	t.Parallel()

	st := newStem(Drums, []float64{0.5, -0.5, 0.5, -0.5}, 4)
	if want := utils.AmplitudeToDB(0.5, 1e-8); st.RMSDB != want {
		t.Errorf("RMSDB = %g, want %g", st.RMSDB, want)
	}
	if st.Duration != 1 {
		t.Errorf("Duration = %g, want 1", st.Duration)
	}
}

type panickyToolkit struct{ *dsp.Gonum }

func (panickyToolkit) HPSS(*dsp.Spectrogram, int, float64) (*dsp.Spectrogram, *dsp.Spectrogram) {
	panic("median filter exploded")
}

func TestSeparate_RecoversPanic(t *testing.T) {
	t.Parallel()

	sep := newQuiet(WithToolkit(panickyToolkit{dsp.NewGonum()}))
	_, err := sep.Separate(audiotest.Sine(8000, 300, 0.25, 0.5))
	if got := audio.KindOf(err); got != audio.KindProcessing {
		t.Errorf("KindOf() = %v, want %v", got, audio.KindProcessing)
	}
	if got := audio.ContextOf(err, ""); got != "Stem separation failed" {
		t.Errorf("ContextOf() = %q", got)
	}
}

func BenchmarkSeparate(b *testing.B) {
	buf := audiotest.Sine(22050, 440, 2, 0.5)
	sep := newQuiet()

	b.ReportAllocs()
	for b.Loop() {
		if _, err := sep.Separate(buf); err != nil {
			b.Fatal(err)
		}
	}
}
