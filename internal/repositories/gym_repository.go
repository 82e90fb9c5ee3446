package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

const gymsPath = "gyms"

// GymRepository persists gym admin accounts under gyms/{id}.
type GymRepository interface {
	Create(ctx context.Context, gym *models.GymAccount) error
	GetByID(ctx context.Context, id string) (*models.GymAccount, error)
	GetByEmail(ctx context.Context, email string) (*models.GymAccount, error)
	Update(ctx context.Context, id string, fields map[string]any) error
}

type gymRepository struct {
	db store.Store
}

// NewGymRepository creates a GymRepository over the given store.
func NewGymRepository(db store.Store) GymRepository {
	return &gymRepository{db: db}
}

func (r *gymRepository) Create(ctx context.Context, gym *models.GymAccount) error {
	return translate(r.db.Write(ctx, gymsPath+"/"+gym.ID, gym))
}

func (r *gymRepository) GetByID(ctx context.Context, id string) (*models.GymAccount, error) {
	var gym models.GymAccount
	if err := r.db.ReadOnce(ctx, gymsPath+"/"+id, &gym); err != nil {
		return nil, translate(err)
	}
	gym.ID = id
	return &gym, nil
}

func (r *gymRepository) GetByEmail(ctx context.Context, email string) (*models.GymAccount, error) {
	children, err := r.db.Query(ctx, gymsPath, store.EqualTo("email", email))
	if err != nil {
		return nil, translate(err)
	}
	if len(children) == 0 {
		return nil, ErrNotFound
	}
	var gym models.GymAccount
	if err := json.Unmarshal(children[0].Value, &gym); err != nil {
		return nil, fmt.Errorf("%w: decode gym %s: %v", ErrStoreError, children[0].Key, err)
	}
	gym.ID = children[0].Key
	return &gym, nil
}

func (r *gymRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	return translate(r.db.Update(ctx, gymsPath+"/"+id, fields))
}
