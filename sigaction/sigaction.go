/*
 * Apache License 2.0
 *
 * Copyright (c) 2022, Austin Zhai
 * All rights reserved.
 */
package sigaction

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jumboframes/acmatch/log"
)

var (
	ReservedFiniSignals = []os.Signal{
		os.Interrupt,
		syscall.SIGTERM,
	}
)

type Notifier interface {
	Notify(os.Signal)
}

type NotifierFunc func(os.Signal)

func (f NotifierFunc) Notify(sg os.Signal) {
	f(sg)
}

type SignalOption func(*Signal)

// OptionSignalCancel is called on the first fini signal.
func OptionSignalCancel(cancel context.CancelFunc) SignalOption {
	return func(sig *Signal) {
		sig.cancels = append(sig.cancels, cancel)
	}
}

type Signal struct {
	mu            sync.RWMutex
	sgCh          chan os.Signal
	cancels       []context.CancelFunc
	notifications map[os.Signal][]Notifier
}

func NewSignal(options ...SignalOption) *Signal {
	sig := &Signal{
		sgCh:          make(chan os.Signal, 1),
		cancels:       []context.CancelFunc{},
		notifications: make(map[os.Signal][]Notifier),
	}
	for _, option := range options {
		option(sig)
	}
	signal.Notify(sig.sgCh, ReservedFiniSignals...)
	return sig
}

// Add registers notifiers for a non fini signal, fini signals are ignored.
func (sig *Signal) Add(sg os.Signal, nts ...Notifier) {
	if isFini(sg) {
		return
	}
	sig.mu.Lock()
	sig.notifications[sg] = append(sig.notifications[sg], nts...)
	sig.mu.Unlock()
	signal.Notify(sig.sgCh, sg)
}

// Wait dispatches signals until a fini signal arrives or ctx is done,
// returning the fini signal or nil.
func (sig *Signal) Wait(ctx context.Context) os.Signal {
	defer signal.Stop(sig.sgCh)
	for {
		select {
		case sg := <-sig.sgCh:
			log.Infof("got signal: %s", sg.String())
			if isFini(sg) {
				// only call once, the second signal will be handled by os
				signal.Reset(ReservedFiniSignals...)
				for _, cancel := range sig.cancels {
					cancel()
				}
				return sg
			}
			sig.mu.RLock()
			nts := sig.notifications[sg]
			sig.mu.RUnlock()
			for _, nt := range nts {
				nt.Notify(sg)
			}

		case <-ctx.Done():
			log.Debugf("signal wait quit: %s", ctx.Err())
			return nil
		}
	}
}

func isFini(sg os.Signal) bool {
	for _, reserved := range ReservedFiniSignals {
		if sg == reserved {
			return true
		}
	}
	return false
}
