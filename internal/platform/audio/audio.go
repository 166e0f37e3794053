// Package audio synthesizes and plays the game's sound effects through the
// system output device. All effects are generated procedurally; no sample
// files are shipped.
package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/vovakirdan/flappy-tui/internal/flappy"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 0 // 32-bit float samples (oto.FormatFloat32LE)
)

// Engine plays short synthesized effects. Playback is fire and forget: Play
// returns immediately, and sounds that cannot be played are dropped.
type Engine struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
}

// NewEngine opens the default audio device. The device becomes usable a
// moment after opening; until then Play drops effects instead of blocking.
func NewEngine() (*Engine, error) {
	ctx, ready, err := oto.NewContext(sampleRate, channelCount, bitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open output device: %w", err)
	}
	return &Engine{ctx: ctx, ready: ready, volume: 0.55}, nil
}

// SetVolume sets effect playback volume, clamped to [0,1].
func (e *Engine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	e.volume = v
}

// Play synthesizes and plays the effect for s. If the device is not ready
// yet the effect is dropped.
func (e *Engine) Play(s flappy.Sound) {
	if e == nil {
		return
	}
	select {
	case <-e.ready:
	default:
		return
	}
	samples := synthesize(s)
	if len(samples) == 0 {
		return
	}
	go func() {
		player := e.ctx.NewPlayer(&sampleReader{data: samples})
		player.SetVolume(e.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type sampleReader struct {
	data []byte
	pos  int
}

func (r *sampleReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func synthesize(s flappy.Sound) []byte {
	switch s {
	case flappy.SoundFlap:
		return genFlap()
	case flappy.SoundScore:
		return genScore()
	case flappy.SoundHit:
		return genHit()
	case flappy.SoundBest:
		return genBest()
	}
	return nil
}

// genFlap: short airy upward sweep, the wing beat.
func genFlap() []byte {
	n := int(0.07 * sampleRate)
	buf := newBuf(n)
	state := uint64(24601)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.45, 0.1, 0.3)
		freq := 240 + 520*p
		tone := fm(t, freq, 1.5, 1.2*(1-p)) * env * 0.34
		lp = lp*0.7 + noise(&state)*0.3
		air := lp * env * 0.16
		stereoF32(buf, i, softSat(tone+air))
	}
	return buf
}

// genScore: two-note coin ding.
func genScore() []byte {
	notes := []struct{ freq, onset float64 }{
		{987.77, 0.00}, // B5
		{1318.5, 0.06}, // E6
	}
	total := int(0.22 * sampleRate)
	mix := make([]float64, total)
	for _, note := range notes {
		start := int(note.onset * sampleRate)
		for i := start; i < total; i++ {
			t := float64(i) / sampleRate
			np := float64(i-start) / float64(total-start)
			env := adsr(np, 0.005, 0.5, 0.05, 0.3)
			mix[i] += fm(t, note.freq, 2.0, 2.5*env) * env * 0.30
		}
	}
	buf := newBuf(total)
	for i, s := range mix {
		stereoF32(buf, i, softSat(s))
	}
	return buf
}

// genHit: blunt thud with a falling sub tail.
func genHit() []byte {
	n := int(0.24 * sampleRate)
	buf := newBuf(n)
	state := uint64(90210)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		p := float64(i) / float64(n)
		crack := 0.0
		if p < 0.05 {
			crack = noise(&state) * (1 - p/0.05) * 0.5
		}
		thumpFreq := 180 - 130*p
		thump := math.Sin(2*math.Pi*thumpFreq*t) * math.Exp(-p*9) * 0.5
		lp = lp*0.8 + noise(&state)*0.2
		body := lp * math.Exp(-p*12) * 0.25
		stereoF32(buf, i, softSat(crack+thump+body))
	}
	return buf
}

// genBest: rising arpeggio for a new record, each note ringing over the next.
func genBest() []byte {
	freqs := []float64{659.25, 830.61, 987.77, 1318.5} // E5 G#5 B5 E6
	noteLen := sampleRate * 70 / 1000
	tail := int(0.20 * sampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteLen
		for i := start; i < total; i++ {
			t := float64(i) / sampleRate
			np := float64(i-start) / float64(total-start)
			env := adsr(np, 0.004, 0.5, 0.06, 0.3)
			mix[i] += fm(t, freq, 2.756, 4.0*env) * env * 0.30
		}
	}
	buf := newBuf(total)
	for i, s := range mix {
		stereoF32(buf, i, softSat(s))
	}
	return buf
}

// ---- Synthesis helpers ---------------------------------------------------

// stereoF32 writes a [-1,1] sample as float32 LE into both channels at frame i.
func stereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < channelCount; c++ {
		off := i*8 + c*4
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation so stacked partials never clip.
func softSat(x float64) float64 {
	if x > 1 {
		return 1 - 0.5/x
	}
	if x < -1 {
		return -1 + 0.5/(-x)
	}
	return x - x*x*x/3
}

// adsr evaluates an attack/decay/sustain/release envelope at normalized
// progress p in [0,1]. attack, decay and release are fractions of the total.
func adsr(p, attack, decay, sustain, release float64) float64 {
	switch {
	case p < attack:
		return p / attack
	case p < attack+decay:
		return 1 - (p-attack)/decay*(1-sustain)
	case p < 1-release:
		return sustain
	default:
		return sustain * (1 - (p-(1-release))/release)
	}
}

// fm returns an FM-synthesized sample: carrier frequency, modulator ratio
// and modulation depth.
func fm(t, carrier, ratio, depth float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * ratio * t)
	return math.Sin(2*math.Pi*carrier*t + depth*mod)
}

// noise advances an LCG state and returns a sample in [-1,1].
func noise(state *uint64) float64 {
	*state = *state*6364136223846793005 + 1442695040888963407
	return float64(int64(*state>>33)-int64(1<<30)) / float64(1<<30)
}

// newBuf allocates a stereo float32 buffer holding n frames.
func newBuf(n int) []byte { return make([]byte, n*8) }
