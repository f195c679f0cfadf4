// SPDX-License-Identifier: EPL-2.0

package analyzer

import (
	"math"
	"slices"
)

const (
	// startBPM centres the log-normal tempo prior; priorOctaves is its width.
	startBPM     = 120.0
	priorOctaves = 1.0
	maxBPM       = 320.0
	// acSeconds bounds the autocorrelation lag.
	acSeconds = 8.0
	tightness = 100.0
)

// OnsetStrength is the mean positive first difference of a mel dB
// spectrogram ([frame][mel]) across bands. The curve is delayed by the
// difference lag plus half a frame (in hops) so it lines up with centred
// frames, and it keeps the spectrogram's frame count.
func OnsetStrength(melDB [][]float64, nfft, hop int) []float64 {
	frames := len(melDB)
	out := make([]float64, frames)
	delay := 1 + nfft/(2*hop)

	for t := 1; t < frames; t++ {
		at := t - 1 + delay
		if at >= frames {
			break
		}

		var sum float64
		for m, v := range melDB[t] {
			if d := v - melDB[t-1][m]; d > 0 {
				sum += d
			}
		}
		out[at] = sum / float64(len(melDB[t]))
	}

	return out
}

// EstimateTempo picks the autocorrelation lag of the onset curve with the
// best score under a log-normal prior around 120 BPM. A flat curve has no
// tempo and reports 0.
func EstimateTempo(onset []float64, sampleRate, hop int) float64 {
	if !hasEnergy(onset) {
		return 0
	}

	frameRate := float64(sampleRate) / float64(hop)
	maxLag := min(int(acSeconds*frameRate), len(onset))

	ac := make([]float64, maxLag)
	for lag := range maxLag {
		var sum float64
		for i := lag; i < len(onset); i++ {
			sum += onset[i] * onset[i-lag]
		}
		ac[lag] = sum
	}
	if ac[0] <= 0 {
		return 0
	}

	best, bestScore := 0.0, math.Inf(-1)
	for lag := 1; lag < maxLag; lag++ {
		bpm := 60 * frameRate / float64(lag)
		if bpm > maxBPM {
			continue
		}

		prior := (math.Log2(bpm) - math.Log2(startBPM)) / priorOctaves
		score := math.Log1p(1e6*ac[lag]/ac[0]) - 0.5*prior*prior
		if score > bestScore {
			best, bestScore = bpm, score
		}
	}

	return best
}

// TrackBeats returns the frame indices of a beat sequence that maximises the
// summed onset strength while keeping inter-beat intervals close to the
// period implied by bpm. Weak beats at both ends are dropped.
func TrackBeats(onset []float64, bpm float64, sampleRate, hop int) []int {
	if bpm <= 0 || !hasEnergy(onset) {
		return nil
	}

	period := int(math.RoundToEven(float64(sampleRate) / float64(hop) * 60 / bpm))
	period = max(period, 1)

	local := localScore(normalizeOnset(onset), period)
	backlink, cumscore := beatDP(local, period)

	tail := lastBeat(cumscore)
	var beats []int
	for n := tail; n >= 0; n = backlink[n] {
		beats = append(beats, n)
	}
	slices.Reverse(beats)

	return trimBeats(local, beats)
}

func hasEnergy(x []float64) bool {
	for _, v := range x {
		if v != 0 {
			return true
		}
	}
	return false
}

// normalizeOnset divides by the sample standard deviation.
func normalizeOnset(onset []float64) []float64 {
	n := float64(len(onset))
	var mean float64
	for _, v := range onset {
		mean += v
	}
	mean /= n

	var ss float64
	for _, v := range onset {
		ss += (v - mean) * (v - mean)
	}

	std := 0.0
	if len(onset) > 1 {
		std = math.Sqrt(ss / (n - 1))
	}

	out := make([]float64, len(onset))
	for i, v := range onset {
		out[i] = v / (std + math.SmallestNonzeroFloat64)
	}
	return out
}

// localScore smooths the onset curve with a Gaussian spanning ±period frames.
func localScore(onset []float64, period int) []float64 {
	window := make([]float64, 2*period+1)
	for i := range window {
		d := float64(i-period) * 32 / float64(period)
		window[i] = math.Exp(-0.5 * d * d)
	}

	out := make([]float64, len(onset))
	for i := range onset {
		var sum float64
		for j, w := range window {
			if k := i + j - period; k >= 0 && k < len(onset) {
				sum += onset[k] * w
			}
		}
		out[i] = sum
	}
	return out
}

// beatDP links every frame to the best previous beat between half a period
// and two periods back, penalising log-deviation from the period.
func beatDP(local []float64, period int) ([]int, []float64) {
	n := len(local)
	backlink := make([]int, n)
	cumscore := make([]float64, n)

	threshold := 0.01 * slices.Max(local)
	logPeriod := math.Log(float64(period))
	nearest := max(int(math.RoundToEven(float64(period)/2)), 1)

	first := true
	backlink[0] = -1
	cumscore[0] = local[0]
	if local[0] >= threshold {
		first = false
	}

	for i := 1; i < n; i++ {
		best, loc := math.Inf(-1), -1
		for l := i - nearest; l >= i-2*period; l-- {
			if l < 0 {
				break
			}
			d := math.Log(float64(i-l)) - logPeriod
			if s := cumscore[l] - tightness*d*d; s > best {
				best, loc = s, l
			}
		}

		cumscore[i] = local[i]
		if loc >= 0 {
			cumscore[i] += best
		}

		if first && local[i] < threshold {
			backlink[i] = -1
		} else {
			backlink[i] = loc
			first = false
		}
	}

	return backlink, cumscore
}

// lastBeat is the last local maximum of cumscore that reaches half the median
// local-maximum score.
func lastBeat(cumscore []float64) int {
	n := len(cumscore)
	isMax := make([]bool, n)
	var peaks []float64

	for i, v := range cumscore {
		prev := cumscore[max(i-1, 0)]
		next := cumscore[min(i+1, n-1)]
		if v > prev && v >= next {
			isMax[i] = true
			peaks = append(peaks, v)
		}
	}

	if len(peaks) == 0 {
		return n - 1
	}

	threshold := 0.5 * median(peaks)
	for i := n - 1; i >= 0; i-- {
		v := 0.0
		if isMax[i] {
			v = cumscore[i]
		}
		if v >= threshold {
			return i
		}
	}

	return n - 1
}

// trimBeats drops leading and trailing beats whose local score is at most
// half the RMS of the Hann-smoothed beat scores.
func trimBeats(local []float64, beats []int) []int {
	if len(beats) == 0 {
		return beats
	}

	scores := make([]float64, len(beats))
	for i, b := range beats {
		scores[i] = local[b]
	}

	hann := [5]float64{0, 0.5, 1, 0.5, 0}
	var ms float64
	for i := range scores {
		var s float64
		for j, w := range hann {
			if k := i + j - 2; k >= 0 && k < len(scores) {
				s += scores[k] * w
			}
		}
		ms += s * s
	}
	threshold := 0.5 * math.Sqrt(ms/float64(len(scores)))

	lo, hi := 0, len(beats)
	for lo < hi && local[beats[lo]] <= threshold {
		lo++
	}
	for hi > lo && local[beats[hi-1]] <= threshold {
		hi--
	}

	return beats[lo:hi]
}

func median(x []float64) float64 {
	s := slices.Clone(x)
	slices.Sort(s)

	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
