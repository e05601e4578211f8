package main

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SpeechInput abstracts the speech recognition engine. The desktop frontend
// provides the real one via transcript push; tests inject fakes.
type SpeechInput interface {
	// Supported reports whether a recognition engine is available at all.
	Supported() bool
	// Start begins listening and streams utterances to the callback. The
	// final flag marks end-of-utterance results; only those trigger commands.
	Start(ctx context.Context, onUtterance func(text string, final bool)) error
	// Stop ends the listening session.
	Stop()
}

// VoiceAction is a recognized navigation intent.
type VoiceAction string

const (
	VoiceNone     VoiceAction = ""
	VoiceGoto     VoiceAction = "goto"
	VoiceFirst    VoiceAction = "first"
	VoiceLast     VoiceAction = "last"
	VoiceNext     VoiceAction = "next"
	VoicePrevious VoiceAction = "previous"
)

// VoiceCommand is the parsed result of one utterance. Target is the 1-based
// slide number for goto commands and 0 otherwise.
type VoiceCommand struct {
	Action VoiceAction
	Target int
}

var gotoSlidePattern = regexp.MustCompile(`(?:go to|goto|jump to|show)\s+slide\s+([a-z0-9]+)`)

// Trigger words must stand alone: "back" in "feedback" or "backend" and
// "next" in "context" are ordinary rehearsal speech, not commands.
var (
	firstSlidePattern = regexp.MustCompile(`\b(?:first slide|from the top|start over)\b`)
	lastSlidePattern  = regexp.MustCompile(`\b(?:last slide|final slide|the end)\b`)
	nextSlidePattern  = regexp.MustCompile(`\b(?:next|forward|advance)\b`)
	prevSlidePattern  = regexp.MustCompile(`\b(?:previous|back)\b`)
)

// wordNumbers maps spoken number words recognizers commonly emit instead of digits.
var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// MatchVoiceCommand parses an utterance into at most one navigation command.
// Matching priority: an explicit slide number beats first/last, which beat
// next/previous, so "go to slide two next" jumps rather than advancing.
func MatchVoiceCommand(utterance string) VoiceCommand {
	text := strings.ToLower(strings.TrimSpace(utterance))
	if text == "" {
		return VoiceCommand{}
	}

	if m := gotoSlidePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return VoiceCommand{Action: VoiceGoto, Target: n}
		}
		if n, ok := wordNumbers[m[1]]; ok {
			return VoiceCommand{Action: VoiceGoto, Target: n}
		}
	}

	switch {
	case firstSlidePattern.MatchString(text):
		return VoiceCommand{Action: VoiceFirst}
	case lastSlidePattern.MatchString(text):
		return VoiceCommand{Action: VoiceLast}
	case nextSlidePattern.MatchString(text):
		return VoiceCommand{Action: VoiceNext}
	case prevSlidePattern.MatchString(text):
		return VoiceCommand{Action: VoicePrevious}
	}
	return VoiceCommand{}
}

// VoiceNavigator turns final utterances into navigation calls, rate-limited
// so one spoken phrase cannot fire a burst of moves.
type VoiceNavigator struct {
	mu        sync.Mutex
	cooldown  time.Duration
	lastFired time.Time
	now       func() time.Time // injectable clock
	dispatch  func(VoiceCommand)
	enabled   bool
}

// NewVoiceNavigator wires a navigator to a command dispatcher. cooldownMs of
// zero or less falls back to the default.
func NewVoiceNavigator(cooldownMs int, dispatch func(VoiceCommand)) *VoiceNavigator {
	if cooldownMs <= 0 {
		cooldownMs = 1500
	}
	return &VoiceNavigator{
		cooldown: time.Duration(cooldownMs) * time.Millisecond,
		now:      time.Now,
		dispatch: dispatch,
	}
}

// SetCooldown adjusts the rate limit, for config changes at runtime.
func (vn *VoiceNavigator) SetCooldown(cooldownMs int) {
	if cooldownMs <= 0 {
		return
	}
	vn.mu.Lock()
	vn.cooldown = time.Duration(cooldownMs) * time.Millisecond
	vn.mu.Unlock()
}

// SetEnabled toggles whether utterances are processed at all.
func (vn *VoiceNavigator) SetEnabled(enabled bool) {
	vn.mu.Lock()
	vn.enabled = enabled
	vn.mu.Unlock()
}

// Enabled reports whether the navigator is listening.
func (vn *VoiceNavigator) Enabled() bool {
	vn.mu.Lock()
	defer vn.mu.Unlock()
	return vn.enabled
}

// HandleUtterance processes one recognizer result. Interim results and
// unmatched phrases are ignored; a matched command fires at most once per
// cooldown window. Returns the command that fired, or a none command.
func (vn *VoiceNavigator) HandleUtterance(text string, final bool) VoiceCommand {
	if !final {
		return VoiceCommand{}
	}

	vn.mu.Lock()
	if !vn.enabled {
		vn.mu.Unlock()
		return VoiceCommand{}
	}
	cmd := MatchVoiceCommand(text)
	if cmd.Action == VoiceNone {
		vn.mu.Unlock()
		return VoiceCommand{}
	}
	now := vn.now()
	if !vn.lastFired.IsZero() && now.Sub(vn.lastFired) < vn.cooldown {
		vn.mu.Unlock()
		return VoiceCommand{}
	}
	vn.lastFired = now
	dispatch := vn.dispatch
	vn.mu.Unlock()

	if dispatch != nil {
		dispatch(cmd)
	}
	return cmd
}
