package viewport

import (
	"context"
	"log/slog"
	"sync"
)

// Watcher consumes a stream of viewport-change events and republishes
// frames, applying only the result matching the latest event. Because the
// recompute itself is side-effect-free there is no race between overlapping
// recomputes; last-viewport-wins at the publish point is the only
// coordination needed, so there is no cancellation token.
type Watcher struct {
	service *Service
	frames  chan Frame
	logger  *slog.Logger

	mu      sync.Mutex
	latest  Viewport
	gen     uint64
	pending chan struct{}
}

func NewWatcher(service *Service, logger *slog.Logger) *Watcher {
	return &Watcher{
		service: service,
		frames:  make(chan Frame, 1),
		logger:  logger,
		// Buffer of one coalesces bursts: many submits while a recompute is
		// in flight collapse into a single wakeup for the newest viewport.
		pending: make(chan struct{}, 1),
	}
}

// Submit records a settled viewport event. Submitting is non-blocking; an
// event arriving while an older one is still queued replaces it.
func (w *Watcher) Submit(vp Viewport) uint64 {
	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.latest = vp
	w.mu.Unlock()

	select {
	case w.pending <- struct{}{}:
	default:
	}
	return gen
}

// Frames delivers the frames that survived the staleness check.
func (w *Watcher) Frames() <-chan Frame {
	return w.frames
}

// Run processes events until the context is done.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.pending:
		}

		w.mu.Lock()
		vp := w.latest
		gen := w.gen
		w.mu.Unlock()

		frame, err := w.service.ComputeFrame(ctx, vp)
		if err != nil {
			w.logger.Warn("Viewport recompute failed", "generation", gen, "error", err)
			continue
		}
		frame.Generation = gen

		// A newer event invalidates this result; discard it on arrival.
		w.mu.Lock()
		stale := gen != w.gen
		w.mu.Unlock()
		if stale {
			w.logger.Debug("Discarding stale viewport frame", "generation", gen)
			continue
		}

		// Replace an unconsumed older frame rather than queueing behind it.
		select {
		case <-w.frames:
		default:
		}
		select {
		case w.frames <- *frame:
		case <-ctx.Done():
			return
		}
	}
}
