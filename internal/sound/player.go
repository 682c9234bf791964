package sound

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes library clips onto the speaker. Clips marked exclusive are
// never started while a previous copy is still playing; every other clip
// overlaps freely, including repeats of itself.
type Player struct {
	mu          sync.Mutex
	lib         *Library
	mixer       *beep.Mixer
	locker      *Locker[ID]
	exclusive   map[ID]bool
	logger      *log.Logger
	initialized bool
}

// NewPlayer creates a player for lib. Thrust is exclusive by default.
func NewPlayer(lib *Library, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		lib:       lib,
		mixer:     &beep.Mixer{},
		locker:    NewLocker[ID](),
		exclusive: map[ID]bool{Thrust: true},
		logger:    logger,
	}
}

// Initialize opens the audio device and starts the mixer.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play starts the clip for id. It is safe to use as a Bus subscriber.
func (p *Player) Play(id ID) {
	var lock *Lock[ID]
	if p.exclusive[id] {
		l, ok := p.locker.TryLock(id)
		if !ok {
			return
		}
		lock = l
	}

	streamer, format, err := p.lib.Decode(id)
	if err != nil {
		p.logger.Warn("sound decode failed", "sound", id, "error", err)
		if lock != nil {
			lock.Release()
		}
		return
	}

	var src beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	done := beep.Callback(func() {
		streamer.Close()
		if lock != nil {
			lock.Release()
		}
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(beep.Seq(src, done))
}

// Playing returns the number of clips currently in the mixer.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Close stops all clips.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Clear()
		p.initialized = false
	}
	p.mixer.Clear()
}
