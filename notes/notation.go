// Package notes plays simple tunes written in a compact text notation on a
// buzzer.
//
// A tune is a comma separated list of notes, for example "C,E,G,8C6". Every
// note is a letter A-G with optional modifiers:
//
//	8C     duration divisor prefix: 8 is an eighth note, 16 a sixteenth
//	C#, #C sharp (one semitone up)
//	Db     flat (one semitone down)
//	C+, C- one octave up or down
//	C6     explicit octave
//	C.     dotted note, 1.5 times as long
//	C:8    duration divisor suffix
//	p, r   rest (as is any note without a letter)
//
// Tokens starting with a colon change the settings for the notes that follow:
// ":o=N" sets the octave, ":b=N" the tempo in beats per minute, and ":d=N" or
// ":N" the default duration divisor. Malformed notes are played as rests.
package notes

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Default settings.
const (
	DefaultTempo   = 120
	DefaultOctave  = 5
	DefaultDivisor = 4
)

// Settings control how notes are turned into tones.
type Settings struct {
	Tempo   int // quarter notes per minute
	Octave  int // octave of notes without an explicit octave
	Divisor int // duration divisor of notes without one, 4 is a quarter note
}

// DefaultSettings returns the settings used when nothing else is configured.
func DefaultSettings() Settings {
	return Settings{Tempo: DefaultTempo, Octave: DefaultOctave, Divisor: DefaultDivisor}
}

// withDefaults replaces invalid values with the defaults. Octave 0 is valid.
func (s Settings) withDefaults() Settings {
	if s.Tempo <= 0 {
		s.Tempo = DefaultTempo
	}
	if s.Octave < 0 || s.Octave > 8 {
		s.Octave = DefaultOctave
	}
	if s.Divisor <= 0 {
		s.Divisor = DefaultDivisor
	}
	return s
}

// WholeNote returns the duration of a whole note at the configured tempo.
func (s Settings) WholeNote() time.Duration {
	return 4 * time.Minute / time.Duration(s.Tempo)
}

// Note is a single parsed note.
type Note struct {
	Frequency uint32 // in Hz, 0 for a rest
	Duration  time.Duration
}

// Rest returns whether this note is silent.
func (n Note) Rest() bool {
	return n.Frequency == 0
}

// Frequency returns the equal-tempered frequency in Hz of a semitone (0 is C,
// 11 is B) in the given octave. A4 is 440Hz.
func Frequency(semitone, octave int) uint32 {
	offset := semitone - 9 + 12*(octave-4)
	f := 440 * math.Pow(2, float64(offset)/12)
	if f < 1 {
		return 1
	}
	return uint32(math.Round(f))
}

var semitones = [7]int{
	'A' - 'A': 9,
	'B' - 'A': 11,
	'C' - 'A': 0,
	'D' - 'A': 2,
	'E' - 'A': 4,
	'F' - 'A': 5,
	'G' - 'A': 7,
}

// ParseNote parses a single note. Settings directives are not notes: they
// parse as rests without duration, use Apply for them.
func ParseNote(token string, s Settings) Note {
	s = s.withDefaults()
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, ":") {
		return Note{}
	}

	// Duration prefix.
	divisor := s.Divisor
	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}
	if i > 0 {
		if d, err := strconv.Atoi(token[:i]); err == nil && d > 0 {
			divisor = d
		}
	}

	semitone := 0
	octave := s.Octave
	hasNote := false
	rest := false
	malformed := false
	dotted := false
	for ; i < len(token); i++ {
		c := token[i]
		switch {
		case c == 'b' && hasNote:
			semitone--
		case c >= 'A' && c <= 'G', c >= 'a' && c <= 'g':
			if hasNote {
				malformed = true
				break
			}
			hasNote = true
			semitone += semitones[(c|0x20)-'a']
		case c == 'p', c == 'P', c == 'r', c == 'R':
			rest = true
		case c == '#':
			semitone++
		case c == '+':
			octave++
		case c == '-':
			octave--
		case c >= '0' && c <= '8' && hasNote:
			octave = int(c - '0')
		case c == '.':
			dotted = true
		case c == ':':
			d, err := strconv.Atoi(token[i+1:])
			if err != nil || d <= 0 {
				malformed = true
			} else {
				divisor = d
			}
			i = len(token)
		case c == ' ':
		default:
			malformed = true
		}
	}

	if octave < 0 || octave > 8 {
		malformed = true
	}

	duration := s.WholeNote() / time.Duration(divisor)
	if dotted {
		duration += duration / 2
	}
	if !hasNote || rest || malformed {
		return Note{Duration: duration}
	}
	return Note{Frequency: Frequency(semitone, octave), Duration: duration}
}

// Apply applies a settings directive such as ":b=140" and returns the new
// settings. The second return value reports whether the token was a directive
// at all. Unknown or malformed directives leave the settings unchanged.
func Apply(token string, s Settings) (Settings, bool) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, ":") {
		return s, false
	}
	key, value, found := strings.Cut(token[1:], "=")
	if !found {
		key, value = "d", key
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return s, true
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "o":
		if n >= 0 && n <= 8 {
			s.Octave = n
		}
	case "b":
		if n > 0 {
			s.Tempo = n
		}
	case "d":
		if n > 0 {
			s.Divisor = n
		}
	}
	return s, true
}

// Parse parses a complete tune. Directives are applied in order and do not
// produce notes.
func Parse(text string, s Settings) []Note {
	s = s.withDefaults()
	var notes []Note
	for _, token := range strings.Split(text, ",") {
		if strings.TrimSpace(token) == "" {
			continue
		}
		if next, ok := Apply(token, s); ok {
			s = next
			continue
		}
		notes = append(notes, ParseNote(token, s))
	}
	return notes
}
