// Package pool provides a concurrent scanning engine backed by a pool of
// workers, each owning a private scratch space cloned from the pool
// template.
package pool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/semaphore"

	"github.com/PhucNguyen204/hscan"
)

var (
	// ErrStarted is returned when Start is invoked on a running engine.
	ErrStarted = errors.New("workers already started")
	// ErrNotStarted is returned when the engine has not been started.
	ErrNotStarted = errors.New("workers not started")
	// ErrNotLoaded is returned when Match is invoked before a pattern
	// database is loaded.
	ErrNotLoaded = errors.New("database not loaded")
	// ErrBusy is returned when all workers are busy.
	ErrBusy = errors.New("all workers busy")
	// ErrWorkerUninitialized is returned when a worker could not set up
	// its scratch space.
	ErrWorkerUninitialized = errors.New("worker uninitialized")
)

// Config controls pool sizing.
type Config struct {
	// Workers is the number of scanning goroutines. Defaults to NumCPU.
	Workers int
	// MaxPending bounds the scans admitted at once. Defaults to Workers.
	MaxPending int64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:    runtime.NumCPU(),
		MaxPending: int64(runtime.NumCPU()),
	}
}

type scanRequest struct {
	blocks       [][]byte
	responseChan chan scanResponse
}

type scanResponse struct {
	matched *roaring.Bitmap
	err     error
}

// Engine is a concurrent scanner. The database is shared read-only by every
// worker; each worker confines its own scratch space.
type Engine struct {
	cfg         Config
	requestChan chan scanRequest
	stopChan    chan struct{}
	workers     []*worker
	sem         *semaphore.Weighted
	db          *hscan.VectoredDatabase
	loaded      bool
	started     bool
	mu          sync.RWMutex
}

// New returns an Engine with the given configuration.
func New(cfg Config) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.MaxPending <= 0 {
		cfg.MaxPending = int64(cfg.Workers)
	}
	return &Engine{
		cfg:         cfg,
		requestChan: make(chan scanRequest),
		stopChan:    make(chan struct{}),
		workers:     make([]*worker, cfg.Workers),
		sem:         semaphore.NewWeighted(cfg.MaxPending),
	}
}

// Start launches the workers backing the engine.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrStarted
	}
	e.stopChan = make(chan struct{})
	for idx := range e.workers {
		e.workers[idx] = newWorker(e.requestChan, e.stopChan)
		go e.workers[idx].run()
	}
	e.started = true
	return nil
}

// Stop stops the workers. Worker scratch spaces are freed on the way out.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return ErrNotStarted
	}
	close(e.stopChan)
	e.started = false
	e.loaded = false
	return nil
}

// Update compiles patterns into a fresh vectored database and hands it to
// every worker. The previous database is left for the collector; workers
// may still be scanning against it.
func (e *Engine) Update(patterns []*hscan.Pattern) error {
	if len(patterns) == 0 {
		return hscan.ErrNoPatterns
	}

	e.mu.RLock()
	started := e.started
	e.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	db, err := hscan.NewVectoredDatabase(patterns...)
	if err != nil {
		return fmt.Errorf("error updating pattern database: %w", err)
	}

	e.mu.Lock()
	e.db = db
	e.loaded = true
	e.mu.Unlock()

	for _, w := range e.workers {
		w.refreshChan <- db
	}
	return nil
}

// Match scans a vectored byte corpus and returns the sorted ids of every
// pattern that matched. ErrBusy is returned when admission is saturated.
func (e *Engine) Match(blocks [][]byte) ([]uint32, error) {
	e.mu.RLock()
	loaded, started := e.loaded, e.started
	e.mu.RUnlock()
	switch {
	case !loaded:
		return nil, ErrNotLoaded
	case !started:
		return nil, ErrNotStarted
	}

	if !e.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer e.sem.Release(1)

	request := scanRequest{
		blocks:       blocks,
		responseChan: make(chan scanResponse, 1),
	}
	select {
	case e.requestChan <- request:
	default:
		return nil, ErrBusy
	}

	response := <-request.responseChan
	if response.err != nil {
		return nil, response.err
	}
	return response.matched.ToArray(), nil
}

// MatchStrings scans a vectored string corpus.
func (e *Engine) MatchStrings(corpus []string) ([]uint32, error) {
	blocks := make([][]byte, len(corpus))
	for i, s := range corpus {
		blocks[i] = []byte(s)
	}
	return e.Match(blocks)
}
