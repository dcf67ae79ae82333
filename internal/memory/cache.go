package memory

import (
	"sync"

	"github.com/medassist-ai/rag-chatbot/internal/model"
)

// sessionCache is the bounded in-process working set of recent turns per
// session, sharded so unrelated sessions never contend on one lock. The
// append-then-trim sequence for a session is atomic under its shard lock.
type sessionCache struct {
	shards [16]cacheShard
}

type cacheShard struct {
	mu       sync.Mutex
	sessions map[string][]model.ConversationTurn
}

func newSessionCache() *sessionCache {
	c := &sessionCache{}
	for i := range c.shards {
		c.shards[i].sessions = make(map[string][]model.ConversationTurn)
	}
	return c
}

func (c *sessionCache) shard(sessionID string) *cacheShard {
	var h uint32 = 2166136261
	for i := 0; i < len(sessionID); i++ {
		h ^= uint32(sessionID[i])
		h *= 16777619
	}
	return &c.shards[h%uint32(len(c.shards))]
}

// append adds a turn and trims the session's list to the newest max entries,
// discarding oldest first.
func (c *sessionCache) append(sessionID string, turn model.ConversationTurn, max int) {
	s := c.shard(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	list := append(s.sessions[sessionID], turn)
	if max > 0 && len(list) > max {
		list = list[len(list)-max:]
	}
	s.sessions[sessionID] = list
}

// snapshot returns a copy of the session's cached turns in original order.
func (c *sessionCache) snapshot(sessionID string) []model.ConversationTurn {
	s := c.shard(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.sessions[sessionID]
	if len(list) == 0 {
		return nil
	}
	out := make([]model.ConversationTurn, len(list))
	copy(out, list)
	return out
}

func (c *sessionCache) drop(sessionID string) {
	s := c.shard(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
