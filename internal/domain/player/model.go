package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
)

// Player is an athlete identity known to the directory. Rows are never deleted.
type Player struct {
	ID          string
	Sport       sport.Sport
	UpstreamID  int64
	FirstName   string
	LastName    string
	DisplayName string
	Position    string
	TeamName    string
	UpdatedAt   time.Time
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if !p.Sport.Valid() {
		return fmt.Errorf("invalid player sport: %s", p.Sport)
	}
	if p.UpstreamID == 0 {
		return fmt.Errorf("player upstream id is required")
	}
	return nil
}
