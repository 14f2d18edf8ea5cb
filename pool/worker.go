package pool

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/PhucNguyen204/hscan"
)

// worker is one scanning goroutine with a private scratch space.
type worker struct {
	requestChan chan scanRequest
	refreshChan chan *hscan.VectoredDatabase
	stopChan    chan struct{}
	db          *hscan.VectoredDatabase
	scratch     *hscan.Scratch
	err         error
}

func newWorker(requestChan chan scanRequest, stopChan chan struct{}) *worker {
	return &worker{
		requestChan: requestChan,
		refreshChan: make(chan *hscan.VectoredDatabase, 1),
		stopChan:    stopChan,
		err:         ErrWorkerUninitialized,
	}
}

func (w *worker) run() {
	for {
		select {
		case request := <-w.requestChan:
			w.onScan(request)
		case db := <-w.refreshChan:
			w.onRefresh(db)
		case <-w.stopChan:
			w.onStop()
			return
		}
	}
}

func (w *worker) onRefresh(db *hscan.VectoredDatabase) {
	w.db = db
	switch w.scratch {
	case nil:
		w.scratch, w.err = hscan.NewScratch(db)
	default:
		_, w.err = w.scratch.Realloc(db)
	}
}

func (w *worker) onScan(request scanRequest) {
	if w.err != nil {
		request.responseChan <- scanResponse{err: w.err}
		return
	}

	matched := roaring.New()
	err := w.db.Scan(request.blocks, w.scratch, func(id uint32, from, to uint64, flags uint32) bool {
		matched.Add(id)
		return true
	})
	request.responseChan <- scanResponse{matched: matched, err: err}
}

func (w *worker) onStop() {
	if w.scratch != nil {
		w.scratch.Free()
		w.scratch = nil
	}
}
