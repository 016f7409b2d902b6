// Package sound plays the short tone that marks a completed word.
package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 880
	toneLength = 50 * time.Millisecond
)

// Chime owns the speaker for the lifetime of the process.
type Chime struct {
	rate beep.SampleRate
}

// NewChime initializes the speaker. It fails when no audio device is available.
func NewChime() (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Chime{rate: sampleRate}, nil
}

// Play queues one tone and returns immediately.
func (c *Chime) Play() {
	sine, err := generators.SineTone(c.rate, toneHz)
	if err != nil {
		return
	}
	speaker.Play(Tone(c.rate, sine))
}

// Tone cuts src down to the chime length.
func Tone(rate beep.SampleRate, src beep.Streamer) beep.Streamer {
	return beep.Take(rate.N(toneLength), src)
}

// Close releases the speaker.
func (c *Chime) Close() {
	speaker.Close()
}
