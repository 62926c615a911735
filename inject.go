package grove

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// injectedEvent is a command scheduled on the stage clock. Scripted input uses
// these so holds and releases land at exact times regardless of frame rate.
type injectedEvent struct {
	at  time.Duration
	cmd Command
}

// InjectAt schedules cmd for the frame whose interval [now, now+dt) contains
// at. Events at or before the current time run on the next frame. Events with
// equal times run in the order they were injected.
func (s *Stage) InjectAt(at time.Duration, cmd Command) {
	i := len(s.injectQueue)
	for i > 0 && s.injectQueue[i-1].at > at {
		i--
	}
	s.injectQueue = append(s.injectQueue, injectedEvent{})
	copy(s.injectQueue[i+1:], s.injectQueue[i:])
	s.injectQueue[i] = injectedEvent{at: at, cmd: cmd}
}

// InjectKey presses k now and releases it hold later. Keys are polled once
// per frame, so a hold of one frame duration moves the camera exactly once.
func (s *Stage) InjectKey(k ebiten.Key, hold time.Duration) {
	s.InjectAt(s.now, KeyDownCommand{Key: k})
	s.InjectAt(s.now+hold, KeyUpCommand{Key: k})
}

// InjectButton presses the on-screen button for dir now and releases it hold
// later. Both events carry their exact timestamps, so the number of repeat
// firings depends only on hold.
func (s *Stage) InjectButton(dir Direction, hold time.Duration) {
	s.InjectAt(s.now, ButtonPressCommand{Direction: dir, At: s.now})
	s.InjectAt(s.now+hold, ButtonReleaseCommand{Direction: dir, At: s.now + hold})
}

// PendingInjections returns the number of scheduled events not yet applied.
func (s *Stage) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjected applies every scheduled event due before until, plus any at
// or before the current time. Returns the number applied.
func (s *Stage) processInjected(until time.Duration) int {
	n := 0
	for n < len(s.injectQueue) {
		if at := s.injectQueue[n].at; at > s.now && at >= until {
			break
		}
		s.injectQueue[n].cmd.Apply(s)
		s.injectQueue[n].cmd = nil
		n++
	}
	if n > 0 {
		s.injectQueue = append(s.injectQueue[:0], s.injectQueue[n:]...)
	}
	return n
}

// ParseKey resolves a key name as printed by ebiten.Key.String, with or
// without a "Key" prefix, ignoring case: "W", "KeyW", "arrowup", "Space".
func ParseKey(name string) (ebiten.Key, error) {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) > 3 && strings.EqualFold(trimmed[:3], "key") {
		trimmed = trimmed[3:]
	}
	if trimmed == "" {
		return 0, fmt.Errorf("empty key name")
	}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), trimmed) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
