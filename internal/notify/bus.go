package notify

import "sync"

// Wildcard subscribes to changes on every key.
const Wildcard = "*"

// Bus fans out storage change notifications inside the process. Delivery is
// best effort: publishing never blocks, and a subscriber that is not
// draining its channel misses updates. Subscribers are expected to re-read
// state through the storage adapter rather than trust the payload, exactly
// like a browser tab reacting to a storage event.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]chan string
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]chan string)}
}

// Subscribe registers interest in changes to key (or every key via
// Wildcard). The returned cancel func must be called to release the
// subscription; the channel is closed by cancel.
func (b *Bus) Subscribe(key string) (<-chan string, func()) {
	ch := make(chan string, 8)

	b.mu.Lock()
	b.subs[key] = append(b.subs[key], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		chans := b.subs[key]
		for i, c := range chans {
			if c == ch {
				b.subs[key] = append(chans[:i], chans[i+1:]...)
				close(ch)
				break
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish notifies subscribers of key and wildcard subscribers that the
// value under key changed. The payload is the key name.
func (b *Bus) Publish(key string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[key] {
		send(ch, key)
	}
	if key != Wildcard {
		for _, ch := range b.subs[Wildcard] {
			send(ch, key)
		}
	}
}

// Broadcast wakes every subscriber with an empty payload, meaning "an
// external writer may have changed anything; re-read what you care about".
func (b *Bus) Broadcast() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, chans := range b.subs {
		for _, ch := range chans {
			send(ch, "")
		}
	}
}

func send(ch chan string, payload string) {
	select {
	case ch <- payload:
	default:
	}
}
