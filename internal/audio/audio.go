package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"k8s.io/klog/v2"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Gm7add9 voiced low: G2, Bb2, D3, F3, A3.
var chord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// Processor is an ambient pad whose filter opens as the system's kinetic
// energy rises. Render is safe to drive without an audio device.
type Processor struct {
	Stream *portaudio.Stream

	Time        float64
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	mu     sync.Mutex
	level  float64
	smooth float64

	Active bool
}

func NewProcessor() *Processor {
	delayLen := int(float64(SampleRate) * 0.6)

	return &Processor{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Start opens the default output device.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Render)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	klog.V(1).InfoS("audio started", "sampleRate", SampleRate, "buffer", BufferSize)
	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	if a.Active {
		portaudio.Terminate()
	}
	a.Active = false
}

// SetLevel sets the target brightness in [0, 1]. Values outside are clamped.
func (a *Processor) SetLevel(level float64) {
	if math.IsNaN(level) {
		level = 0
	}
	a.mu.Lock()
	a.level = math.Max(0, math.Min(1, level))
	a.mu.Unlock()
}

// Level returns the target brightness.
func (a *Processor) Level() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

// EnergyLevel maps kinetic energy relative to its starting value onto
// [0, 1]. A ratio of 1 sits in the middle; doubling saturates.
func EnergyLevel(kinetic, initial float64) float64 {
	if !(initial > 0) {
		return 0
	}
	return math.Max(0, math.Min(1, kinetic/initial/2))
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// one-pole low pass
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Render fills a stereo output buffer.
func (a *Processor) Render(out [][]float32) {
	target := a.Level()

	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		a.smooth = a.smooth*0.9995 + target*0.0005
		cutoff := 300.0 + 900.0*a.smooth

		sampleL, sampleR := 0.0, 0.0
		for j, f := range chord {
			g := 1.0 / float64(len(chord))
			lfo := math.Sin(a.Time*0.2 + float64(j))

			sampleL += triangle(a.Time*(f*0.999)) * g * (0.7 + 0.3*lfo)
			sampleR += triangle(a.Time*(f*1.001)) * g * (0.7 + 0.3*lfo)
		}

		a.FilterState[0] = lpf(sampleL, cutoff, dt, a.FilterState[0])
		a.FilterState[1] = lpf(sampleR, cutoff, dt, a.FilterState[1])

		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]

		// ping-pong feedback
		mixL := a.FilterState[0] + delayL*0.3 + delayR*0.1
		mixR := a.FilterState[1] + delayR*0.3 + delayL*0.1

		a.DelayLine[0][a.DelayHead] = mixL * 0.7
		a.DelayLine[1][a.DelayHead] = mixR * 0.7
		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		a.Time += dt
	}
}
