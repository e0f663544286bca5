// Package selection tracks a multi-select session over visible notes
// and performs the two batched operations: bulk delete and bulk move.
package selection

import (
	"errors"
	"sort"

	"github.com/marcus/inkwell/internal/store"
)

// ErrConfirmationRequired gates bulk delete: the caller must re-invoke
// with confirmation after the user approves.
var ErrConfirmationRequired = errors.New("confirmation required")

// ErrNothingSelected is returned by the bulk operations when the
// selection set is empty.
var ErrNothingSelected = errors.New("nothing selected")

// Controller is the multi-select state. Outside selection mode the id
// set is always empty.
type Controller struct {
	active bool
	ids    map[string]bool
}

// Active reports whether selection mode is on.
func (c *Controller) Active() bool { return c.active }

// Toggle flips selection mode. Entering and leaving both start from an
// empty set.
func (c *Controller) Toggle() {
	c.active = !c.active
	c.ids = nil
}

// ToggleMember adds or removes a note from the set. Ignored outside
// selection mode.
func (c *Controller) ToggleMember(id string) {
	if !c.active {
		return
	}
	if c.ids == nil {
		c.ids = make(map[string]bool)
	}
	if c.ids[id] {
		delete(c.ids, id)
	} else {
		c.ids[id] = true
	}
}

// Selected reports membership.
func (c *Controller) Selected(id string) bool { return c.ids[id] }

// Count returns the selection size.
func (c *Controller) Count() int { return len(c.ids) }

// IDs returns the selected ids in stable order.
func (c *Controller) IDs() []string {
	out := make([]string, 0, len(c.ids))
	for id := range c.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// BulkDelete removes every selected note as one atomic store update,
// then clears the selection and leaves selection mode. Without
// confirmation it refuses and changes nothing.
func (c *Controller) BulkDelete(s *store.Store, confirmed bool) (int, error) {
	if len(c.ids) == 0 {
		return 0, ErrNothingSelected
	}
	if !confirmed {
		return 0, ErrConfirmationRequired
	}
	removed, err := s.DeleteNotes(c.IDs())
	if err != nil {
		return removed, err
	}
	c.active = false
	c.ids = nil
	return removed, nil
}

// BulkMove files every selected note under folderID (empty unfiles
// them), then clears the selection and leaves selection mode.
func (c *Controller) BulkMove(s *store.Store, folderID string) (int, error) {
	if len(c.ids) == 0 {
		return 0, ErrNothingSelected
	}
	moved, err := s.MoveNotes(c.IDs(), folderID)
	if err != nil {
		return moved, err
	}
	c.active = false
	c.ids = nil
	return moved, nil
}
