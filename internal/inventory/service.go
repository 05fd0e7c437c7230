package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	Snapshot() *Snapshot
	Mutate(ctx context.Context, fn func(*Snapshot) error) error
}

var validate = validator.New()

// Service owns the entity operations. Every mutation validates first, then
// runs inside Repository.Mutate so the snapshot is persisted before the
// call returns.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type AddItemParams struct {
	Name  string `validate:"required"`
	Unit  string `validate:"required"`
	Type  string
	Group string
}

// EditItemParams is a partial update; nil fields stay untouched.
type EditItemParams struct {
	Name  *string
	Unit  *string
	Type  *string
	Group *string
}

type AddWarehouseParams struct {
	Name string `validate:"required"`
	Desc string
}

type LineParams struct {
	ItemID string `validate:"required"`
	Unit   string
	Qty    Quantity
	Desc   string
}

type AddPermissionParams struct {
	Number    string
	Type      Type
	Store     string `validate:"required"`
	From      string
	To        string
	Date      Date
	SubNumber string
	Posted    bool
	Lines     []LineParams `validate:"required,min=1,max=25,dive"`
}

// UpdatePermissionParams is a partial update; nil fields stay untouched.
// A non-nil Lines replaces the whole line set.
type UpdatePermissionParams struct {
	Number    *string
	Type      *Type
	Store     *string `validate:"omitnil,required"`
	From      *string
	To        *string
	Date      *Date
	SubNumber *string
	Posted    *bool
	Lines     []LineParams `validate:"omitnil,min=1,max=25,dive"`
}

// Snapshot returns a detached copy of the full state.
func (s *Service) Snapshot() *Snapshot {
	return s.repo.Snapshot()
}

func (s *Service) Items() []Item {
	return s.repo.Snapshot().Items
}

func (s *Service) Item(id string) (Item, error) {
	if it := s.repo.Snapshot().ItemByID(id); it != nil {
		return *it, nil
	}

	return Item{}, ErrNotFound
}

func (s *Service) Warehouses() []Warehouse {
	return s.repo.Snapshot().Warehouses
}

func (s *Service) Permissions() []Permission {
	return s.repo.Snapshot().Permissions
}

func (s *Service) Permission(id string) (Permission, error) {
	if p := s.repo.Snapshot().PermissionByID(id); p != nil {
		out := *p
		out.Lines = slices.Clone(p.Lines)

		return out, nil
	}

	return Permission{}, ErrNotFound
}

func (s *Service) AddItem(ctx context.Context, params AddItemParams) (Item, error) {
	if err := validate.Struct(params); err != nil {
		return Item{}, newValidationError(err)
	}

	item := Item{
		ID:    uuid.NewString(),
		Name:  params.Name,
		Unit:  params.Unit,
		Type:  params.Type,
		Group: params.Group,
	}

	err := s.repo.Mutate(ctx, func(snap *Snapshot) error {
		snap.Items = append(snap.Items, item)
		return nil
	})
	if err != nil {
		return Item{}, fmt.Errorf("adding item: %w", err)
	}

	return item, nil
}

// EditItem applies the provided fields to the item. An unknown id is a
// silent no-op, matching the lookup rule for removed items.
func (s *Service) EditItem(ctx context.Context, id string, params EditItemParams) error {
	err := s.repo.Mutate(ctx, func(snap *Snapshot) error {
		item := snap.ItemByID(id)
		if item == nil {
			return nil
		}

		if params.Name != nil {
			item.Name = *params.Name
		}

		if params.Unit != nil {
			item.Unit = *params.Unit
		}

		if params.Type != nil {
			item.Type = *params.Type
		}

		if params.Group != nil {
			item.Group = *params.Group
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("editing item: %w", err)
	}

	return nil
}

// RemoveItem removes the item record only. Permission lines referencing it
// stay in place and keep their aggregation effect.
func (s *Service) RemoveItem(ctx context.Context, id string) error {
	err := s.repo.Mutate(ctx, func(snap *Snapshot) error {
		snap.Items = slices.DeleteFunc(snap.Items, func(it Item) bool {
			return it.ID == id
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("removing item: %w", err)
	}

	return nil
}

func (s *Service) AddWarehouse(ctx context.Context, params AddWarehouseParams) (Warehouse, error) {
	if err := validate.Struct(params); err != nil {
		return Warehouse{}, newValidationError(err)
	}

	wh := Warehouse{
		ID:   uuid.NewString(),
		Name: params.Name,
		Desc: params.Desc,
	}

	err := s.repo.Mutate(ctx, func(snap *Snapshot) error {
		snap.Warehouses = append(snap.Warehouses, wh)
		return nil
	})
	if err != nil {
		return Warehouse{}, fmt.Errorf("adding warehouse: %w", err)
	}

	return wh, nil
}

func (s *Service) AddPermission(ctx context.Context, params AddPermissionParams) (Permission, error) {
	if err := s.checkPermission(params, params.Lines); err != nil {
		return Permission{}, err
	}

	now := time.Now().UTC()

	perm := Permission{
		ID:        uuid.NewString(),
		Number:    params.Number,
		Type:      params.Type,
		Store:     params.Store,
		From:      params.From,
		To:        params.To,
		Date:      params.Date,
		SubNumber: params.SubNumber,
		Posted:    params.Posted,
		Lines:     linesFromParams(params.Lines),
		CreatedAt: now.Format(time.RFC3339),
	}
	if params.Posted {
		perm.PostedAt = now.Format(time.RFC3339)
	}

	err := s.repo.Mutate(ctx, func(snap *Snapshot) error {
		snap.Permissions = append(snap.Permissions, perm)
		return nil
	})
	if err != nil {
		return Permission{}, fmt.Errorf("adding permission: %w", err)
	}

	return perm, nil
}

// UpdatePermission merges the provided fields into an existing permission
// and returns ErrNotFound when the id does not resolve.
func (s *Service) UpdatePermission(ctx context.Context, id string, params UpdatePermissionParams) (Permission, error) {
	if err := s.checkPermission(params, params.Lines); err != nil {
		return Permission{}, err
	}

	var updated Permission

	err := s.repo.Mutate(ctx, func(snap *Snapshot) error {
		perm := snap.PermissionByID(id)
		if perm == nil {
			return ErrNotFound
		}

		if params.Number != nil {
			perm.Number = *params.Number
		}

		if params.Type != nil {
			perm.Type = *params.Type
		}

		if params.Store != nil {
			perm.Store = *params.Store
		}

		if params.From != nil {
			perm.From = *params.From
		}

		if params.To != nil {
			perm.To = *params.To
		}

		if params.Date != nil {
			perm.Date = *params.Date
		}

		if params.SubNumber != nil {
			perm.SubNumber = *params.SubNumber
		}

		if params.Posted != nil {
			perm.Posted = *params.Posted
			if perm.Posted && perm.PostedAt == "" {
				perm.PostedAt = time.Now().UTC().Format(time.RFC3339)
			}
		}

		if params.Lines != nil {
			perm.Lines = linesFromParams(params.Lines)
		}

		updated = *perm
		updated.Lines = slices.Clone(perm.Lines)

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Permission{}, ErrNotFound
		}

		return Permission{}, fmt.Errorf("updating permission: %w", err)
	}

	return updated, nil
}

// DeletePermission removes the permission outright. An unknown id is a
// no-op.
func (s *Service) DeletePermission(ctx context.Context, id string) error {
	err := s.repo.Mutate(ctx, func(snap *Snapshot) error {
		snap.Permissions = slices.DeleteFunc(snap.Permissions, func(p Permission) bool {
			return p.ID == id
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting permission: %w", err)
	}

	return nil
}

// checkPermission combines tag validation with the qty > 0 rule, which the
// tags cannot express for a decimal.
func (s *Service) checkPermission(params any, lines []LineParams) error {
	fields := make(map[string]string)

	if err := validate.Struct(params); err != nil {
		for k, v := range newValidationError(err).Fields {
			fields[k] = v
		}
	}

	for i, ln := range lines {
		if ln.Qty.IsPositive() {
			continue
		}

		key := fmt.Sprintf("Lines[%d].Qty", i)
		if _, ok := fields[key]; !ok {
			fields[key] = "gt"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

func linesFromParams(params []LineParams) []Line {
	lines := make([]Line, len(params))
	for i, lp := range params {
		lines[i] = Line{
			ItemID: lp.ItemID,
			Unit:   lp.Unit,
			Qty:    lp.Qty,
			Desc:   lp.Desc,
		}
	}

	return lines
}
