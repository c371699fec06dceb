// Package scanpool runs scans of one shared automaton on a fixed set of
// worker goroutines, each scan completing through a synchub sync.
package scanpool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jumboframes/acmatch/ahocorasick"
	"github.com/jumboframes/acmatch/log"
	acsync "github.com/jumboframes/acmatch/sync"
	"github.com/jumboframes/acmatch/synchub"
)

var (
	ErrBusy         = errors.New("all workers busy")
	ErrClosed       = errors.New("pool closed")
	ErrNilAutomaton = errors.New("nil automaton")
	ErrBadWorkers   = errors.New("workers must be positive")
	ErrBadQueue     = errors.New("queue must not be negative")
)

type Option func(*Pool) error

// OptionWorkers sets the number of scanning goroutines, runtime.NumCPU()
// by default.
func OptionWorkers(workers int) Option {
	return func(pool *Pool) error {
		if workers <= 0 {
			return ErrBadWorkers
		}
		pool.workers = workers
		return nil
	}
}

// OptionQueue lets up to queue requests wait for a worker before Submit
// reports ErrBusy. Zero, the default, hands requests off directly.
func OptionQueue(queue int) Option {
	return func(pool *Pool) error {
		if queue < 0 {
			return ErrBadQueue
		}
		pool.queue = queue
		return nil
	}
}

type request struct {
	syncID uint64
	text   string
}

type Pool struct {
	automaton *ahocorasick.Automaton
	workers   int
	queue     int

	requests chan request
	stop     chan struct{}
	hub      *synchub.SyncHub
	seq      uint64

	mu     sync.RWMutex
	closed bool
	once   acsync.Once
	wg     sync.WaitGroup
}

func New(automaton *ahocorasick.Automaton, options ...Option) (*Pool, error) {
	if automaton == nil {
		return nil, ErrNilAutomaton
	}
	pool := &Pool{
		automaton: automaton,
		workers:   runtime.NumCPU(),
	}
	for _, option := range options {
		if err := option(pool); err != nil {
			return nil, err
		}
	}
	pool.requests = make(chan request, pool.queue)
	pool.stop = make(chan struct{})
	pool.hub = synchub.NewSyncHub()

	pool.wg.Add(pool.workers)
	for i := 0; i < pool.workers; i++ {
		go pool.work()
	}
	log.Debugf("scanpool started, workers: %d, queue: %d", pool.workers, pool.queue)
	return pool, nil
}

// Submit hands text to a worker without blocking. The returned sync
// delivers the ahocorasick.Matches as Ack, or the scan error. A positive
// timeout fails it with synchub.ErrSyncTimeout if the scan takes longer.
func (pool *Pool) Submit(text string, timeout time.Duration) (*synchub.Sync, error) {
	return pool.submit(text, timeout, false)
}

// Scan submits text and waits for its result.
func (pool *Pool) Scan(text string, timeout time.Duration) (ahocorasick.Matches, error) {
	sync, err := pool.submit(text, timeout, true)
	if err != nil {
		return nil, err
	}
	return result(<-sync.C())
}

// ScanAll scans every text, results are in the order of texts. The first
// failing text's error is returned.
func (pool *Pool) ScanAll(texts []string, timeout time.Duration) ([]ahocorasick.Matches, error) {
	syncs := make([]*synchub.Sync, 0, len(texts))
	var firstErr error
	for _, text := range texts {
		sync, err := pool.submit(text, timeout, true)
		if err != nil {
			firstErr = err
			break
		}
		syncs = append(syncs, sync)
	}

	results := make([]ahocorasick.Matches, len(texts))
	for i, sync := range syncs {
		matches, err := result(<-sync.C())
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results[i] = matches
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// Close stops the workers, pending syncs fail with synchub.ErrSyncHubClosed.
// A Close racing with another returns without waiting for it.
func (pool *Pool) Close() {
	pool.once.Do(func() {
		pool.mu.Lock()
		pool.closed = true
		close(pool.stop)
		pool.mu.Unlock()

		pool.wg.Wait()
		pool.hub.Close()
		log.Debugf("scanpool closed")
	})
}

func (pool *Pool) submit(text string, timeout time.Duration, block bool) (*synchub.Sync, error) {
	pool.mu.RLock()
	defer pool.mu.RUnlock()
	if pool.closed {
		return nil, ErrClosed
	}

	syncID := atomic.AddUint64(&pool.seq, 1)
	options := []synchub.SyncOption{}
	if timeout > 0 {
		options = append(options, synchub.WithTimeout(timeout))
	}
	sync := pool.hub.New(syncID, options...)
	req := request{syncID: syncID, text: text}
	if block {
		pool.requests <- req
		return sync, nil
	}
	select {
	case pool.requests <- req:
		return sync, nil
	default:
		pool.hub.Cancel(syncID)
		return nil, ErrBusy
	}
}

func (pool *Pool) work() {
	defer pool.wg.Done()
	for {
		select {
		case req := <-pool.requests:
			pool.scan(req)
		case <-pool.stop:
			return
		}
	}
}

func (pool *Pool) scan(req request) {
	matches, err := pool.automaton.Search(req.text)
	var delivered bool
	if err != nil {
		delivered = pool.hub.Error(req.syncID, err)
	} else {
		delivered = pool.hub.Ack(req.syncID, matches)
	}
	if !delivered {
		log.Tracef("scan %d finished after its sync was gone", req.syncID)
	}
}

func result(event *synchub.Event) (ahocorasick.Matches, error) {
	if event.Error != nil {
		return nil, event.Error
	}
	matches, _ := event.Ack.(ahocorasick.Matches)
	return matches, nil
}
