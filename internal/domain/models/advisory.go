package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdvisoryKind classifies a generated recommendation.
type AdvisoryKind string

const (
	AdvisoryWatering   AdvisoryKind = "WATERING"
	AdvisoryPlanting   AdvisoryKind = "PLANTING"
	AdvisoryHarvesting AdvisoryKind = "HARVESTING"
	AdvisoryWarning    AdvisoryKind = "WARNING"
	AdvisoryGeneral    AdvisoryKind = "GENERAL"
)

// Advisory priorities.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// Advisory is a time-bounded recommendation produced by the insight engine.
// Advisories are created only during a generation pass; a pass replaces the
// farm's whole set, so at most one current set exists per farm.
type Advisory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FarmID      primitive.ObjectID `bson:"farm_id" json:"-"`
	Kind        AdvisoryKind       `bson:"kind" json:"insight_type"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Priority    int                `bson:"priority" json:"priority"`
	ValidFrom   time.Time          `bson:"valid_from" json:"valid_from"`
	ValidUntil  time.Time          `bson:"valid_until" json:"valid_until"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ActiveAt reports whether the advisory is still valid at the given instant.
func (a Advisory) ActiveAt(t time.Time) bool {
	return !a.ValidUntil.Before(t)
}

// SortAdvisoriesForDisplay orders advisories by priority descending, then
// valid_from ascending, the order presentation layers expect.
func SortAdvisoriesForDisplay(advisories []Advisory) {
	sort.SliceStable(advisories, func(i, j int) bool {
		if advisories[i].Priority != advisories[j].Priority {
			return advisories[i].Priority > advisories[j].Priority
		}
		return advisories[i].ValidFrom.Before(advisories[j].ValidFrom)
	})
}
