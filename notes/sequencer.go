package notes

import (
	"log/slog"
	"strings"
	"time"
)

// Speaker produces a square wave of a given frequency until stopped.
type Speaker interface {
	Tone(frequency uint32)
	Stop()
}

// Sequencer plays a tune one note at a time from a cooperative tick loop.
type Sequencer struct {
	speaker  Speaker
	defaults Settings
	settings Settings
	logger   *slog.Logger

	remaining string
	playing   bool
	next      time.Duration // when the next note starts

	sounding bool
	stopAt   time.Duration // when the current tone ends
}

// NewSequencer returns an idle sequencer. The logger may be nil.
func NewSequencer(speaker Speaker, defaults Settings, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}
	defaults = defaults.withDefaults()
	return &Sequencer{
		speaker:  speaker,
		defaults: defaults,
		settings: defaults,
		logger:   logger,
	}
}

// Play starts playing a tune, replacing the one that is playing. The first
// note starts on the next tick at or after now.
func (s *Sequencer) Play(text string, settings Settings, now time.Duration) {
	if s.playing {
		s.logger.Debug("replacing tune", "remaining", s.remaining)
	}
	s.settings = settings.withDefaults()
	s.remaining = text
	s.playing = true
	s.next = now
	s.logger.Debug("playing tune", "tempo", s.settings.Tempo, "octave", s.settings.Octave)
}

// PlayNote plays a single note for its duration, without waiting for it to
// finish. It returns the duration of the note. A tune that is playing is
// stopped.
func (s *Sequencer) PlayNote(token string, now time.Duration) time.Duration {
	s.playing = false
	s.remaining = ""
	note := ParseNote(token, s.defaults)
	s.sound(note, now)
	return note.Duration
}

// Playing returns whether a tune is being played.
func (s *Sequencer) Playing() bool {
	return s.playing
}

// Stop silences the speaker and forgets the rest of the tune.
func (s *Sequencer) Stop() {
	if s.playing {
		s.logger.Debug("tune stopped")
	}
	s.playing = false
	s.remaining = ""
	s.silence()
}

// Tick starts the next note once the previous one has finished, and silences
// the speaker at the end of the last note.
func (s *Sequencer) Tick(now time.Duration) {
	if s.playing && now >= s.next {
		s.advance(now)
	}
	if s.sounding && now >= s.stopAt {
		s.silence()
	}
}

// advance consumes tokens up to and including the next note. Settings
// directives take effect immediately.
func (s *Sequencer) advance(now time.Duration) {
	for {
		if s.remaining == "" {
			s.playing = false
			s.logger.Debug("tune finished")
			return
		}
		token, rest, _ := strings.Cut(s.remaining, ",")
		s.remaining = rest
		if strings.TrimSpace(token) == "" {
			continue
		}
		if settings, ok := Apply(token, s.settings); ok {
			s.settings = settings
			continue
		}
		note := ParseNote(token, s.settings)
		s.sound(note, now)
		s.next = now + note.Duration
		return
	}
}

func (s *Sequencer) sound(note Note, now time.Duration) {
	if note.Rest() {
		s.silence()
		return
	}
	s.speaker.Tone(note.Frequency)
	s.sounding = true
	s.stopAt = now + note.Duration
}

func (s *Sequencer) silence() {
	if s.sounding {
		s.speaker.Stop()
		s.sounding = false
	}
}
