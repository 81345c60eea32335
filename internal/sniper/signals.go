package sniper

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalController reports interrupt and termination signals.
type SignalController struct {
	ch chan os.Signal
}

func NewSignalController() *SignalController {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return &SignalController{ch: ch}
}

// C delivers the first received signal.
func (s *SignalController) C() <-chan os.Signal {
	return s.ch
}

func (s *SignalController) Close() {
	signal.Stop(s.ch)
}
