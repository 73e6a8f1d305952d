package convert

import (
	"context"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/jsphweid/pixelroll/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Runner keeps at most one conversion in flight. Starting a new one cancels
// the previous run and waits for it before anything is replaced.
type Runner struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	result   atomic.Pointer[Result]
	err      atomic.Pointer[error]
	progress atomic.Uint64
}

func NewRunner() *Runner {
	return &Runner{}
}

// Start launches p on src. onDone is called with the published result after
// a successful run, never after a cancelled one. Cancelling parent cancels
// the run too.
func (r *Runner) Start(parent context.Context, p *Process, src image.Image, onDone func(*Result)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()

	r.result.Store(nil)
	r.err.Store(nil)
	r.setProgress(0)

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)
		defer cancel()
		res, err := p.Run(ctx, src, r.setProgress)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logrus.WithError(err).Error("conversion failed")
			r.err.Store(&err)
			return
		}
		r.result.Store(res)
		if onDone != nil {
			onDone(res)
		}
	}()
}

func (r *Runner) stopLocked() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
}

// Cancel stops the running conversion, if any, and waits for it. A finished
// result stays published.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

// wait blocks until the current run, if any, has returned.
func (r *Runner) wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (r *Runner) Result() *Result {
	return r.result.Load()
}

func (r *Runner) Err() error {
	if err := r.err.Load(); err != nil {
		return *err
	}
	return nil
}

func (r *Runner) Progress() float64 {
	return math.Float64frombits(r.progress.Load())
}

func (r *Runner) setProgress(p float64) {
	r.progress.Store(math.Float64bits(util.Clamp(p, 0, 1)))
}
