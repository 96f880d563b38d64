package teamview

import (
	"sync"

	"github.com/ncalf/draftboard/go/internal/models"
)

// Mirror holds the last announced team stats. Until the first announcement it
// shows an empty row per team.
type Mirror struct {
	mu    sync.RWMutex
	stats []models.TeamStats
}

// NewMirror creates a zero-filled mirror
func NewMirror() *Mirror {
	return &Mirror{stats: models.ZeroTeamStats()}
}

// Apply replaces the mirrored stats verbatim
func (m *Mirror) Apply(stats []models.TeamStats) {
	cp := make([]models.TeamStats, len(stats))
	copy(cp, stats)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = cp
}

// Stats returns a copy of the mirrored stats
func (m *Mirror) Stats() []models.TeamStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make([]models.TeamStats, len(m.stats))
	copy(cp, m.stats)
	return cp
}

// Follow keeps the mirror in sync with a client
func (m *Mirror) Follow(c *Client) {
	c.OnTeamStats(m.Apply)
}
