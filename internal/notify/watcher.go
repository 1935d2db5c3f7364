package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher turns filesystem changes under the profile directory into bus
// broadcasts. It is the cross-process analog of the browser storage event:
// another companion process writing the shared store file wakes this one
// up. Same-process writes publish on the bus directly and are not routed
// through the filesystem, so a writer never observes its own change here.
type Watcher struct {
	mu      sync.Mutex
	fs      *fsnotify.Watcher
	bus     *Bus
	dir     string
	settle  time.Duration
	logger  *log.Logger
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher watches dir (the directory holding the store file, not the
// file itself, so WAL side files and atomic replaces are caught too).
func NewWatcher(dir string, bus *Bus, logger *log.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fs:     fs,
		bus:    bus,
		dir:    dir,
		settle: 200 * time.Millisecond,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine. Rapid event bursts
// (sqlite touches db, -wal and -shm together) are coalesced into a single
// broadcast once the directory settles.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.fs.Add(w.dir); err != nil {
		return err
	}

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)

	var settle *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(w.settle)
				fire = settle.C
			} else {
				if !settle.Stop() {
					<-settle.C
				}
				settle.Reset(w.settle)
			}
		case <-fire:
			settle = nil
			fire = nil
			w.bus.Broadcast()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Printf("store watcher: %v", err)
		}
	}
}

// Stop halts the watcher and releases the underlying filesystem watch.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	<-w.doneCh
	_ = w.fs.Close()
}
