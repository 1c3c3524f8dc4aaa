package gamepad

import (
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

// commandRunner executes Command bindings: shell commands fired on the
// rising edge of their trigger, rate-limited by the binding's minimum
// inter-launch delay. Bindings with a nonzero id additionally wait for
// the previous run to exit before relaunching.
type commandRunner struct {
	log *slog.Logger

	mu      sync.Mutex
	waiting map[uint32]bool
}

func newCommandRunner(log *slog.Logger) *commandRunner {
	return &commandRunner{
		log:     log,
		waiting: make(map[uint32]bool),
	}
}

// trigger is called from the poll goroutine with the binding's current
// trigger condition.
func (r *commandRunner) trigger(bind *Binding, pressed bool) {
	if !pressed {
		bind.active = false
		return
	}
	if bind.active {
		return
	}
	bind.active = true

	now := time.Now()
	if bind.Delay > 0 && !bind.lastRun.IsZero() && now.Sub(bind.lastRun) < bind.Delay {
		return
	}

	if bind.ID != 0 {
		r.mu.Lock()
		running := r.waiting[bind.ID]
		if !running {
			r.waiting[bind.ID] = true
		}
		r.mu.Unlock()
		if running {
			r.log.Debug("command still running, skipping relaunch", "id", bind.ID)
			return
		}
	}

	bind.lastRun = now
	r.log.Debug("launching command binding", "cmd", bind.Cmd)

	id := bind.ID
	cmd := exec.Command("sh", "-c", bind.Cmd)
	go func() {
		err := cmd.Run()
		if err != nil {
			r.log.Debug("command binding failed", "cmd", cmd.String(), "error", err)
		}
		if id != 0 {
			r.mu.Lock()
			delete(r.waiting, id)
			r.mu.Unlock()
		}
	}()
}
