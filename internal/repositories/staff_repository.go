package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

const staffPath = "staff"

// StaffRepository persists staff profiles under staff/{id}.
type StaffRepository interface {
	CreateStaff(ctx context.Context, staff *models.StaffMember) error
	GetStaffByID(ctx context.Context, id string) (*models.StaffMember, error)
	GetStaff(ctx context.Context) ([]models.StaffMember, error)
	UpdateStaff(ctx context.Context, id string, fields map[string]any) error
	DeleteStaff(ctx context.Context, id string) error
}

type staffRepository struct {
	db store.Store
}

// NewStaffRepository creates a StaffRepository over the given store.
func NewStaffRepository(db store.Store) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreateStaff(ctx context.Context, staff *models.StaffMember) error {
	return translate(r.db.Write(ctx, staffPath+"/"+staff.ID, staff))
}

func (r *staffRepository) GetStaffByID(ctx context.Context, id string) (*models.StaffMember, error) {
	var staff models.StaffMember
	if err := r.db.ReadOnce(ctx, staffPath+"/"+id, &staff); err != nil {
		return nil, translate(err)
	}
	staff.ID = id
	return &staff, nil
}

func (r *staffRepository) GetStaff(ctx context.Context) ([]models.StaffMember, error) {
	children, err := r.db.Query(ctx, staffPath, store.ChildQuery{})
	if err != nil {
		return nil, translate(err)
	}
	members := make([]models.StaffMember, 0, len(children))
	for _, c := range children {
		var staff models.StaffMember
		if err := json.Unmarshal(c.Value, &staff); err != nil {
			return nil, fmt.Errorf("%w: decode staff %s: %v", ErrStoreError, c.Key, err)
		}
		staff.ID = c.Key
		members = append(members, staff)
	}
	return members, nil
}

func (r *staffRepository) UpdateStaff(ctx context.Context, id string, fields map[string]any) error {
	return translate(r.db.Update(ctx, staffPath+"/"+id, fields))
}

func (r *staffRepository) DeleteStaff(ctx context.Context, id string) error {
	return translate(r.db.Delete(ctx, staffPath+"/"+id))
}
