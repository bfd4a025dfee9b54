package state

import (
	"sync"

	"github.com/washly/washly-go/pkg/logger"
	"github.com/washly/washly-go/pkg/signals"
)

// Prompt identifies which auth prompt is showing. At most one is open.
type Prompt string

const (
	PromptNone     Prompt = ""
	PromptLogin    Prompt = "login"
	PromptRegister Prompt = "register"
)

// PromptGate coordinates the login/register prompts: a login-required
// signal forces the login prompt open, and a successful auth change closes
// whichever prompt is showing.
type PromptGate struct {
	mu      sync.Mutex
	current Prompt
}

func NewPromptGate(bus signals.Bus) (*PromptGate, error) {
	g := &PromptGate{}

	if err := bus.Subscribe(signals.LoginRequired, func(msg *signals.Message) {
		g.OpenLogin()
	}); err != nil {
		return nil, err
	}

	if err := bus.Subscribe(signals.AuthChanged, func(msg *signals.Message) {
		var event signals.AuthChangedEvent
		if err := msg.Decode(&event); err != nil {
			logger.Warn("Malformed auth changed signal", "error", err)
			return
		}
		if event.LoggedIn {
			g.Close()
		}
	}); err != nil {
		return nil, err
	}

	return g, nil
}

// OpenLogin shows the login prompt, replacing the register prompt if open.
func (g *PromptGate) OpenLogin() {
	g.mu.Lock()
	g.current = PromptLogin
	g.mu.Unlock()
}

// OpenRegister shows the register prompt, replacing the login prompt if open.
func (g *PromptGate) OpenRegister() {
	g.mu.Lock()
	g.current = PromptRegister
	g.mu.Unlock()
}

func (g *PromptGate) Close() {
	g.mu.Lock()
	g.current = PromptNone
	g.mu.Unlock()
}

func (g *PromptGate) Current() Prompt {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}
