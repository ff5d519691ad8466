package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two item variants.
type Kind string

const (
	KindStream Kind = "stream"
	KindGroup  Kind = "group"
)

// ClockState is the clock status of a single stream.
type ClockState int

const (
	ClockIdle ClockState = iota
	ClockRunning
	ClockStopped
)

// Item is either a *Stream or a *Group, identified by ID.
type Item interface {
	ItemID() string
	ItemKind() Kind
}

// Stream is a tracked entity identified by an immutable username.
type Stream struct {
	ID           string
	Username     string
	DisplayName  string
	ClockInTime  *time.Time
	ClockOutTime *time.Time
	Notes        string
}

// Group is a named, colored container of streams. Groups never nest.
type Group struct {
	ID           string
	Name         string
	Color        string
	Items        []*Stream
	PreviewCols  int
	ExpandedCols int
}

// Defaults for a freshly created group.
const (
	DefaultGroupName    = "New Group"
	DefaultGroupColor   = "#f47425"
	DefaultPreviewCols  = 2
	DefaultExpandedCols = 3
)

// Colors available for groups.
var GroupColors = []string{
	"#f47425", "#ef4444", "#eab308", "#22c55e",
	"#3b82f6", "#8b5cf6", "#ec4899", "#64748b",
}

// NewStream creates a stream with a fresh ID, no clock and no notes.
func NewStream(username string) *Stream {
	return &Stream{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: username,
	}
}

// NewGroup creates an empty group with default name, color and columns.
func NewGroup() *Group {
	return &Group{
		ID:           uuid.NewString(),
		Name:         DefaultGroupName,
		Color:        DefaultGroupColor,
		Items:        []*Stream{},
		PreviewCols:  DefaultPreviewCols,
		ExpandedCols: DefaultExpandedCols,
	}
}

func (s *Stream) ItemID() string { return s.ID }
func (s *Stream) ItemKind() Kind { return KindStream }
func (g *Group) ItemID() string  { return g.ID }
func (g *Group) ItemKind() Kind  { return KindGroup }

// ClockState derives the stream's clock status from its two timestamps.
func (s *Stream) ClockState() ClockState {
	switch {
	case s.ClockInTime == nil:
		return ClockIdle
	case s.ClockOutTime == nil:
		return ClockRunning
	default:
		return ClockStopped
	}
}

// ClockedIn reports whether the stream has a start time and no end time.
func (s *Stream) ClockedIn() bool {
	return s.ClockState() == ClockRunning
}

// SessionDuration is the tracked time so far: clock-out minus clock-in
// for a stopped clock, now minus clock-in for a running one.
func (s *Stream) SessionDuration(now time.Time) time.Duration {
	if s.ClockInTime == nil {
		return 0
	}
	if s.ClockOutTime != nil {
		return s.ClockOutTime.Sub(*s.ClockInTime)
	}
	return now.Sub(*s.ClockInTime)
}

// Usernames flattens the collection into the persisted history order:
// top-level streams first, then each group's streams in group order.
func Usernames(items []Item) []string {
	var names []string
	for _, it := range items {
		if s, ok := it.(*Stream); ok {
			names = append(names, s.Username)
		}
	}
	for _, it := range items {
		if g, ok := it.(*Group); ok {
			for _, s := range g.Items {
				names = append(names, s.Username)
			}
		}
	}
	return names
}

// --- JSON encoding ---
//
// The persisted shape matches the original browser sessions: camelCase
// keys, `type` discriminator, clock times as Unix milliseconds.

type streamJSON struct {
	ID           string `json:"id"`
	Type         Kind   `json:"type"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName,omitempty"`
	ClockInTime  *int64 `json:"clockInTime"`
	ClockOutTime *int64 `json:"clockOutTime"`
	Notes        string `json:"notes,omitempty"`
}

type groupJSON struct {
	ID           string    `json:"id"`
	Type         Kind      `json:"type"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	Items        []*Stream `json:"items"`
	PreviewCols  int       `json:"previewCols,omitempty"`
	ExpandedCols int       `json:"expandedCols,omitempty"`
}

func timeToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func millisToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}

func (s *Stream) MarshalJSON() ([]byte, error) {
	return json.Marshal(streamJSON{
		ID:           s.ID,
		Type:         KindStream,
		Username:     s.Username,
		DisplayName:  s.DisplayName,
		ClockInTime:  timeToMillis(s.ClockInTime),
		ClockOutTime: timeToMillis(s.ClockOutTime),
		Notes:        s.Notes,
	})
}

func (s *Stream) UnmarshalJSON(data []byte) error {
	var raw streamJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID = raw.ID
	s.Username = raw.Username
	s.DisplayName = raw.DisplayName
	if s.DisplayName == "" {
		s.DisplayName = raw.Username
	}
	s.ClockInTime = millisToTime(raw.ClockInTime)
	s.ClockOutTime = millisToTime(raw.ClockOutTime)
	s.Notes = raw.Notes
	return nil
}

func (g *Group) MarshalJSON() ([]byte, error) {
	items := g.Items
	if items == nil {
		items = []*Stream{}
	}
	return json.Marshal(groupJSON{
		ID:           g.ID,
		Type:         KindGroup,
		Name:         g.Name,
		Color:        g.Color,
		Items:        items,
		PreviewCols:  g.PreviewCols,
		ExpandedCols: g.ExpandedCols,
	})
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var raw groupJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	g.ID = raw.ID
	g.Name = raw.Name
	g.Color = raw.Color
	if g.Color == "" {
		g.Color = DefaultGroupColor
	}
	g.Items = raw.Items
	if g.Items == nil {
		g.Items = []*Stream{}
	}
	g.PreviewCols = raw.PreviewCols
	if g.PreviewCols == 0 {
		g.PreviewCols = DefaultPreviewCols
	}
	g.ExpandedCols = raw.ExpandedCols
	if g.ExpandedCols == 0 {
		g.ExpandedCols = DefaultExpandedCols
	}
	return nil
}

// MarshalItems encodes the collection as a JSON array of tagged items.
func MarshalItems(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	return json.Marshal(items)
}

// UnmarshalItems decodes a JSON array of items. Older saves carry no
// `type` discriminator; those are classified by structure: an item
// with an `items` field is a group, anything else is a stream.
func UnmarshalItems(data []byte) ([]Item, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(raws))
	for _, raw := range raws {
		var probe struct {
			Type  Kind            `json:"type"`
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, err
		}

		kind := probe.Type
		if kind != KindStream && kind != KindGroup {
			if len(probe.Items) > 0 && string(probe.Items) != "null" {
				kind = KindGroup
			} else {
				kind = KindStream
			}
		}

		switch kind {
		case KindGroup:
			g := &Group{}
			if err := json.Unmarshal(raw, g); err != nil {
				return nil, err
			}
			items = append(items, g)
		default:
			s := &Stream{}
			if err := json.Unmarshal(raw, s); err != nil {
				return nil, err
			}
			items = append(items, s)
		}
	}
	return items, nil
}
