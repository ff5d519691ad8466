// Package wall holds the pure mutation operations over the ordered
// item collection. Every operation takes the current collection and
// returns a new one; inputs are never modified, so callers can keep
// prior snapshots around. A missing id is always a silent no-op.
package wall

import (
	"errors"
	"time"

	"github.com/sadopc/streamwall/internal/model"
)

// ErrClockOutBeforeIn is returned by SetTimes when both times are set
// and the clock-out precedes the clock-in.
var ErrClockOutBeforeIn = errors.New("clock-out time is before clock-in time")

// now is swapped out in tests.
var now = time.Now

// AddMany replaces the whole collection with one fresh stream per
// username, in input order. Used at session start.
func AddMany(usernames []string) []model.Item {
	items := make([]model.Item, 0, len(usernames))
	for _, u := range usernames {
		items = append(items, model.NewStream(u))
	}
	return items
}

// AddOne appends one fresh stream to the end of the collection.
func AddOne(items []model.Item, username string) []model.Item {
	out := make([]model.Item, 0, len(items)+1)
	out = append(out, items...)
	return append(out, model.NewStream(username))
}

// Remove deletes a top-level item outright; a group is deleted along
// with its contained streams. A stream nested inside a group is not
// deleted: it is extracted and appended back at the top level.
func Remove(items []model.Item, id string) []model.Item {
	if indexOf(items, id) >= 0 {
		out := make([]model.Item, 0, len(items)-1)
		for _, it := range items {
			if it.ItemID() != id {
				out = append(out, it)
			}
		}
		return out
	}

	// Look for the stream inside a group and demote it.
	var extracted *model.Stream
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		g, ok := it.(*model.Group)
		if !ok || extracted != nil {
			out = append(out, it)
			continue
		}
		found := false
		for _, s := range g.Items {
			if s.ID == id {
				found = true
				break
			}
		}
		if !found {
			out = append(out, it)
			continue
		}
		ng := cloneGroup(g)
		ng.Items = make([]*model.Stream, 0, len(g.Items)-1)
		for _, s := range g.Items {
			if s.ID == id {
				extracted = s
			} else {
				ng.Items = append(ng.Items, s)
			}
		}
		out = append(out, ng)
	}
	if extracted == nil {
		return items
	}
	return append(out, extracted)
}

// UpdateStream applies fn to the stream matching id, wherever it
// lives: top level first, then inside each group. Everything else is
// structurally unchanged.
func UpdateStream(items []model.Item, id string, fn func(model.Stream) model.Stream) []model.Item {
	out := make([]model.Item, len(items))
	changed := false
	for i, it := range items {
		out[i] = it
		switch v := it.(type) {
		case *model.Stream:
			if v.ID == id {
				ns := fn(*v)
				out[i] = &ns
				changed = true
			}
		case *model.Group:
			hit := false
			for _, s := range v.Items {
				if s.ID == id {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
			ng := cloneGroup(v)
			ng.Items = make([]*model.Stream, len(v.Items))
			for j, s := range v.Items {
				if s.ID == id {
					ns := fn(*s)
					ng.Items[j] = &ns
				} else {
					ng.Items[j] = s
				}
			}
			out[i] = ng
			changed = true
		}
	}
	if !changed {
		return items
	}
	return out
}

// SetDisplayName renames the stream in place.
func SetDisplayName(items []model.Item, id, name string) []model.Item {
	return UpdateStream(items, id, func(s model.Stream) model.Stream {
		s.DisplayName = name
		return s
	})
}

// SetNotes replaces the stream's free-text notes.
func SetNotes(items []model.Item, id, notes string) []model.Item {
	return UpdateStream(items, id, func(s model.Stream) model.Stream {
		s.Notes = notes
		return s
	})
}

// ToggleClock clocks the stream out if it is running, otherwise
// starts a fresh clock-in. Toggling a stopped stream does not resume:
// it records a new clock-in and clears the old clock-out.
func ToggleClock(items []model.Item, id string) []model.Item {
	t := now()
	return UpdateStream(items, id, func(s model.Stream) model.Stream {
		if s.ClockedIn() {
			s.ClockOutTime = &t
		} else {
			s.ClockInTime = &t
			s.ClockOutTime = nil
		}
		return s
	})
}

// ResetClock clears both clock times.
func ResetClock(items []model.Item, id string) []model.Item {
	return UpdateStream(items, id, func(s model.Stream) model.Stream {
		s.ClockInTime = nil
		s.ClockOutTime = nil
		return s
	})
}

// SetTimes overwrites both clock fields directly. A clock-out earlier
// than the clock-in is rejected and the collection is returned
// unchanged.
func SetTimes(items []model.Item, id string, clockIn, clockOut *time.Time) ([]model.Item, error) {
	if clockIn != nil && clockOut != nil && clockOut.Before(*clockIn) {
		return items, ErrClockOutBeforeIn
	}
	return UpdateStream(items, id, func(s model.Stream) model.Stream {
		s.ClockInTime = clockIn
		s.ClockOutTime = clockOut
		return s
	}), nil
}

// Reorder removes the dragged top-level item and reinserts it at the
// index occupied by the target. Only top-level items move; a missing
// id on either side is a no-op.
func Reorder(items []model.Item, draggedID, targetID string) []model.Item {
	from := indexOf(items, draggedID)
	to := indexOf(items, targetID)
	if from < 0 || to < 0 {
		return items
	}

	out := make([]model.Item, 0, len(items))
	out = append(out, items...)
	dragged := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]model.Item{dragged}, out[to:]...)...)
	return out
}

// CreateGroup prepends a new empty group with defaults.
func CreateGroup(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items)+1)
	out = append(out, model.NewGroup())
	return append(out, items...)
}

// GroupPatch is a partial update for a group; nil fields are left
// untouched.
type GroupPatch struct {
	Name         *string
	Color        *string
	PreviewCols  *int
	ExpandedCols *int
}

// UpdateGroup shallow-merges patch into the group matching id. A
// missing id, or an id that names a stream, is a no-op.
func UpdateGroup(items []model.Item, id string, patch GroupPatch) []model.Item {
	i := indexOf(items, id)
	if i < 0 {
		return items
	}
	g, ok := items[i].(*model.Group)
	if !ok {
		return items
	}

	ng := cloneGroup(g)
	if patch.Name != nil {
		ng.Name = *patch.Name
	}
	if patch.Color != nil {
		ng.Color = *patch.Color
	}
	if patch.PreviewCols != nil {
		ng.PreviewCols = *patch.PreviewCols
	}
	if patch.ExpandedCols != nil {
		ng.ExpandedCols = *patch.ExpandedCols
	}

	out := make([]model.Item, len(items))
	copy(out, items)
	out[i] = ng
	return out
}

// Ungroup dissolves the group matching id: the group disappears and
// its streams are spilled to the end of the collection in their
// existing order.
func Ungroup(items []model.Item, id string) []model.Item {
	i := indexOf(items, id)
	if i < 0 {
		return items
	}
	g, ok := items[i].(*model.Group)
	if !ok {
		return items
	}

	out := make([]model.Item, 0, len(items)-1+len(g.Items))
	out = append(out, items[:i]...)
	out = append(out, items[i+1:]...)
	for _, s := range g.Items {
		out = append(out, s)
	}
	return out
}

// MoveToGroup moves a top-level stream into the target group,
// appended at the end of the group's items. A stream already nested
// in some group is not relocated; remove it first to demote it.
func MoveToGroup(items []model.Item, streamID, groupID string) []model.Item {
	si := indexOf(items, streamID)
	if si < 0 {
		return items
	}
	stream, ok := items[si].(*model.Stream)
	if !ok {
		return items
	}
	gi := indexOf(items, groupID)
	if gi < 0 {
		return items
	}
	g, ok := items[gi].(*model.Group)
	if !ok {
		return items
	}

	ng := cloneGroup(g)
	ng.Items = make([]*model.Stream, 0, len(g.Items)+1)
	ng.Items = append(ng.Items, g.Items...)
	ng.Items = append(ng.Items, stream)

	out := make([]model.Item, 0, len(items)-1)
	for _, it := range items {
		switch it.ItemID() {
		case streamID:
			// dropped from the top level
		case groupID:
			out = append(out, ng)
		default:
			out = append(out, it)
		}
	}
	return out
}

// FindStream locates a stream by id at the top level or inside any
// group, along with the owning group (nil when top-level).
func FindStream(items []model.Item, id string) (*model.Stream, *model.Group) {
	for _, it := range items {
		switch v := it.(type) {
		case *model.Stream:
			if v.ID == id {
				return v, nil
			}
		case *model.Group:
			for _, s := range v.Items {
				if s.ID == id {
					return s, v
				}
			}
		}
	}
	return nil, nil
}

func indexOf(items []model.Item, id string) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func cloneGroup(g *model.Group) *model.Group {
	ng := *g
	return &ng
}
