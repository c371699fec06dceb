package synchub

import (
	"errors"
	"sync"
	"time"

	"github.com/jumboframes/acmatch/log"

	timer "github.com/singchia/go-timer/v2"
)

var (
	ErrSyncTimeout   = errors.New("sync timeout")
	ErrSyncHubClosed = errors.New("synchub closed")
	ErrSyncResynced  = errors.New("the id was resynced")
)

type Event struct {
	SyncID interface{}
	Data   interface{}
	Ack    interface{}
	Error  error
}

// Sync is a one-shot completion, its channel receives exactly one Event.
type Sync struct {
	syncID  interface{}
	event   *Event
	ch      chan *Event
	cb      func(*Event)
	timeout time.Duration
	tick    timer.Tick
}

func (sync *Sync) C() <-chan *Event {
	return sync.ch
}

func (sync *Sync) SyncID() interface{} {
	return sync.syncID
}

type SyncOption func(*Sync)

func WithData(data interface{}) SyncOption {
	return func(sync *Sync) {
		sync.event.Data = data
	}
}

// WithTimeout completes the sync with ErrSyncTimeout unless it's done first.
func WithTimeout(timeout time.Duration) SyncOption {
	return func(sync *Sync) {
		sync.timeout = timeout
	}
}

// WithCallback is called with the final event, after it's sent on C.
func WithCallback(cb func(*Event)) SyncOption {
	return func(sync *Sync) {
		sync.cb = cb
	}
}

type SyncHubOption func(*SyncHub)

// OptionTimer shares an outside timer, the hub won't close it.
func OptionTimer(tmr timer.Timer) SyncHubOption {
	return func(sh *SyncHub) {
		sh.tmr = tmr
		sh.tmrOutside = true
	}
}

type SyncHub struct {
	mu         sync.Mutex
	syncs      map[interface{}]*Sync
	closed     bool
	tmr        timer.Timer
	tmrOutside bool
}

func NewSyncHub(options ...SyncHubOption) *SyncHub {
	sh := &SyncHub{
		syncs: make(map[interface{}]*Sync),
	}
	for _, option := range options {
		option(sh)
	}
	if sh.tmr == nil {
		sh.tmr = timer.NewTimer()
	}
	return sh
}

// New registers syncID, an older sync under the same id is failed with
// ErrSyncResynced.
func (sh *SyncHub) New(syncID interface{}, options ...SyncOption) *Sync {
	sync := &Sync{
		syncID: syncID,
		event:  &Event{SyncID: syncID},
		ch:     make(chan *Event, 1),
	}
	for _, option := range options {
		option(sync)
	}

	sh.mu.Lock()
	if sh.closed {
		sh.mu.Unlock()
		sh.complete(sync, nil, ErrSyncHubClosed)
		return sync
	}
	old, ok := sh.syncs[syncID]
	sh.syncs[syncID] = sync
	if sync.timeout > 0 {
		sync.tick = sh.tmr.Add(sync.timeout, timer.WithData(sync), timer.WithHandler(sh.timeout))
	}
	sh.mu.Unlock()

	if ok {
		log.Debugf("syncID: %v resynced", syncID)
		sh.complete(old, nil, ErrSyncResynced)
	}
	return sync
}

func (sh *SyncHub) Done(syncID interface{}) bool {
	return sh.finish(syncID, nil, nil)
}

func (sh *SyncHub) Ack(syncID interface{}, ack interface{}) bool {
	return sh.finish(syncID, ack, nil)
}

func (sh *SyncHub) Error(syncID interface{}, err error) bool {
	return sh.finish(syncID, nil, err)
}

// Cancel drops syncID without delivering anything.
func (sh *SyncHub) Cancel(syncID interface{}) bool {
	sync := sh.take(syncID, nil)
	if sync == nil {
		return false
	}
	if sync.tick != nil {
		sync.tick.Cancel()
	}
	log.Debugf("syncID: %v canceled", syncID)
	return true
}

// Close fails every pending sync with ErrSyncHubClosed, later syncs fail
// the same way right away.
func (sh *SyncHub) Close() {
	sh.mu.Lock()
	if sh.closed {
		sh.mu.Unlock()
		return
	}
	sh.closed = true
	syncs := sh.syncs
	sh.syncs = make(map[interface{}]*Sync)
	sh.mu.Unlock()

	for syncID, sync := range syncs {
		log.Debugf("syncID: %v closed", syncID)
		sh.complete(sync, nil, ErrSyncHubClosed)
	}
	if !sh.tmrOutside {
		sh.tmr.Close()
	}
}

func (sh *SyncHub) Len() int {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return len(sh.syncs)
}

func (sh *SyncHub) finish(syncID interface{}, ack interface{}, err error) bool {
	sync := sh.take(syncID, nil)
	if sync == nil {
		log.Debugf("syncID: %v not found", syncID)
		return false
	}
	sh.complete(sync, ack, err)
	return true
}

// take removes syncID. With want set it only does so while syncID still
// maps to want.
func (sh *SyncHub) take(syncID interface{}, want *Sync) *Sync {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sync, ok := sh.syncs[syncID]
	if !ok || (want != nil && sync != want) {
		return nil
	}
	delete(sh.syncs, syncID)
	return sync
}

// complete must only be called by whoever removed sync from the map.
func (sh *SyncHub) complete(sync *Sync, ack interface{}, err error) {
	if sync.tick != nil {
		sync.tick.Cancel()
	}
	sync.event.Ack = ack
	sync.event.Error = err
	sync.ch <- sync.event
	if sync.cb != nil {
		sync.cb(sync.event)
	}
}

func (sh *SyncHub) timeout(event *timer.Event) {
	sync, ok := event.Data.(*Sync)
	if !ok {
		return
	}
	if sh.take(sync.syncID, sync) == nil {
		return
	}
	log.Debugf("syncID: %v timeout", sync.syncID)
	sync.tick = nil
	sh.complete(sync, nil, ErrSyncTimeout)
}
