package coordinator

import "sync"

// Presence is the set of usernames currently considered online. It tracks
// membership only; which connection carries a user is the Directory's job.
type Presence struct {
	mu     sync.RWMutex
	online map[string]struct{}
}

func NewPresence() *Presence {
	return &Presence{
		online: make(map[string]struct{}),
	}
}

func (that *Presence) MarkOnline(username string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.online[username] = struct{}{}
}

func (that *Presence) MarkOffline(username string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.online, username)
}

func (that *Presence) IsOnline(username string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.online[username]

	return ok
}
