package inventory

import "github.com/google/uuid"

// Snapshot is the complete persisted state: the three containers of the
// wire format. Balances are never stored; they are recomputed from the
// posted permissions every time.
type Snapshot struct {
	Items       []Item       `json:"items"`
	Warehouses  []Warehouse  `json:"warehouses"`
	Permissions []Permission `json:"permissions"`
}

// Seed is the first-run snapshot: a couple of sample items so the UI has
// something to show, and the two standard warehouses.
func Seed() *Snapshot {
	return &Snapshot{
		Items: []Item{
			{ID: uuid.NewString(), Name: "أسمنت بورتلاندي", Unit: "شيكارة", Type: "مستهلك", Group: "خامات"},
			{ID: uuid.NewString(), Name: "دريل هيلتي", Unit: "قطعة", Type: "معدة", Group: "عدد يدوية"},
		},
		Warehouses: []Warehouse{
			{ID: uuid.NewString(), Name: "المخزن الرئيسي", Desc: "المخزن الرئيسي للشركة"},
			{ID: uuid.NewString(), Name: "مخزن الموقع", Desc: "مخزن موقع العمل"},
		},
		Permissions: []Permission{},
	}
}

// Clone returns a deep copy; mutating the copy never touches the original.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Items:       make([]Item, len(s.Items)),
		Warehouses:  make([]Warehouse, len(s.Warehouses)),
		Permissions: make([]Permission, len(s.Permissions)),
	}

	copy(out.Items, s.Items)
	copy(out.Warehouses, s.Warehouses)

	for i, p := range s.Permissions {
		lines := make([]Line, len(p.Lines))
		copy(lines, p.Lines)
		p.Lines = lines
		out.Permissions[i] = p
	}

	return out
}

// Normalize replaces nil containers with empty ones so the snapshot always
// marshals as three arrays.
func (s *Snapshot) Normalize() {
	if s.Items == nil {
		s.Items = []Item{}
	}

	if s.Warehouses == nil {
		s.Warehouses = []Warehouse{}
	}

	if s.Permissions == nil {
		s.Permissions = []Permission{}
	}
}

// ItemByID returns the current item with the given id, or nil. Removed
// items simply stop resolving; references to them stay wherever they are.
func (s *Snapshot) ItemByID(id string) *Item {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return &s.Items[i]
		}
	}

	return nil
}

// ItemByName returns the current item with the exact name, or nil.
func (s *Snapshot) ItemByName(name string) *Item {
	for i := range s.Items {
		if s.Items[i].Name == name {
			return &s.Items[i]
		}
	}

	return nil
}

// PermissionByID returns the permission with the given id, or nil.
func (s *Snapshot) PermissionByID(id string) *Permission {
	for i := range s.Permissions {
		if s.Permissions[i].ID == id {
			return &s.Permissions[i]
		}
	}

	return nil
}
