package asset

import (
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/assetgraph/pkg/errors"
)

// EventType classifies a regulatory or corporate event.
type EventType string

// Event types.
const (
	EventEarnings          EventType = "earnings"
	EventFiling            EventType = "filing"
	EventMergerAcquisition EventType = "merger_acquisition"
	EventRegulatoryAction  EventType = "regulatory_action"
	EventDividend          EventType = "dividend"
	EventRatingChange      EventType = "rating_change"
)

var eventTypes = map[EventType]bool{
	EventEarnings:          true,
	EventFiling:            true,
	EventMergerAcquisition: true,
	EventRegulatoryAction:  true,
	EventDividend:          true,
	EventRatingChange:      true,
}

// ParseEventType converts a case-insensitive name into an EventType.
// "m&a" and "merger" are accepted as aliases for merger_acquisition.
func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "m&a", "merger", "acquisition":
		return EventMergerAcquisition, nil
	}
	if eventTypes[t] {
		return t, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown event type %q", s)
}

// Event is an immutable regulatory event affecting one or more assets.
type Event struct {
	id          string
	typ         EventType
	affected    []string
	impact      float64
	description string
}

// NewEvent creates an event. An empty id is replaced with a random UUID.
// Affected ids are deduplicated in order and empty ids are dropped.
// The impact score must lie in [-1, 1].
func NewEvent(id string, typ EventType, affected []string, impact float64, description string) (Event, error) {
	if !eventTypes[typ] {
		return Event{}, errors.New(errors.ErrCodeInvalidInput, "unknown event type %q", typ)
	}
	if err := errors.ValidateImpactScore(impact); err != nil {
		return Event{}, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	ids := make([]string, 0, len(affected))
	for _, a := range affected {
		if a != "" && !slices.Contains(ids, a) {
			ids = append(ids, a)
		}
	}

	return Event{
		id:          id,
		typ:         typ,
		affected:    ids,
		impact:      impact,
		description: description,
	}, nil
}

// ID returns the event identifier.
func (e Event) ID() string { return e.id }

// Type returns the event classification.
func (e Event) Type() EventType { return e.typ }

// AffectedAssetIDs returns a copy of the affected asset ids in input order.
func (e Event) AffectedAssetIDs() []string { return slices.Clone(e.affected) }

// Affects reports whether the event names the asset.
func (e Event) Affects(assetID string) bool { return slices.Contains(e.affected, assetID) }

// ImpactScore returns the signed impact in [-1, 1].
func (e Event) ImpactScore() float64 { return e.impact }

// Magnitude returns abs(ImpactScore).
func (e Event) Magnitude() float64 { return math.Abs(e.impact) }

// Description returns the free-form description.
func (e Event) Description() string { return e.description }
