// Package material assigns material ids to named slot requests.
//
// Layouts never touch material ids directly. They return [Request] values
// naming a group of elements and the slot (an asset reference) it should
// use, and a single composition stage calls [Allocate] once with every
// request. Allocation is a pure function of the ordered request list:
// the first distinct slot gets id 1, the next id 2, and so on. Requests with
// an empty slot use [DefaultID].
package material

// DefaultID is the id of the kernel's default material.
const DefaultID = 0

// Request asks for the material of Group to be Slot.
type Request struct {
	Group string `json:"group"`
	Slot  string `json:"slot,omitempty"`
}

// Table is the outcome of an allocation.
type Table struct {
	// Slots[i] is the slot with id i+1.
	Slots []string `json:"slots"`
	// Groups maps each requested group to its id.
	Groups map[string]int `json:"groups"`
}

// Allocate assigns ids to requests in order. A group requested twice keeps
// the id of its last request.
func Allocate(requests ...[]Request) Table {
	t := Table{Groups: make(map[string]int)}
	ids := make(map[string]int)
	for _, batch := range requests {
		for _, r := range batch {
			if r.Slot == "" {
				t.Groups[r.Group] = DefaultID
				continue
			}
			id, ok := ids[r.Slot]
			if !ok {
				t.Slots = append(t.Slots, r.Slot)
				id = len(t.Slots)
				ids[r.Slot] = id
			}
			t.Groups[r.Group] = id
		}
	}
	return t
}

// ID returns the id assigned to group, or DefaultID if it was never
// requested.
func (t Table) ID(group string) int {
	if id, ok := t.Groups[group]; ok {
		return id
	}
	return DefaultID
}

// Slot returns the slot for id, or "" for the default material.
func (t Table) Slot(id int) string {
	if id <= 0 || id > len(t.Slots) {
		return ""
	}
	return t.Slots[id-1]
}

// IDs returns every id in use, default included when any group maps to it.
func (t Table) IDs() []int {
	seen := make(map[int]bool)
	var out []int
	if len(t.Groups) == 0 {
		return nil
	}
	for _, id := range t.Groups {
		seen[id] = true
	}
	for id := 0; id <= len(t.Slots); id++ {
		if seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// First returns the first non-empty slot.
func First(slots ...string) string {
	for _, s := range slots {
		if s != "" {
			return s
		}
	}
	return ""
}
