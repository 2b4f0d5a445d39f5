package sleep

import (
	"fmt"
	"sort"
	"time"

	"github.com/sleepwell/sleepwell/internal/models"
)

// DefaultActivityLimit is how many activities a compilation proposes.
const DefaultActivityLimit = 2

// Activities returns up to limit activities that fit strictly inside the
// free window [from, until), longest first. Ties keep input order.
func Activities(from, until time.Time, pool []models.Activity, limit int) ([]models.Activity, error) {
	if until.Before(from) {
		return nil, fmt.Errorf("activity window ends before it starts: %w", ErrInvalidInput)
	}
	window := until.Sub(from)

	fitting := make([]models.Activity, 0, len(pool))
	for _, a := range pool {
		if a.OccupationTime < window {
			fitting = append(fitting, a)
		}
	}
	sort.SliceStable(fitting, func(i, j int) bool {
		return fitting[i].OccupationTime > fitting[j].OccupationTime
	})

	if len(fitting) > limit {
		fitting = fitting[:limit]
	}
	return fitting, nil
}
