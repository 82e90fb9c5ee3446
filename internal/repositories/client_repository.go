package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

const clientsPath = "clients"

// ClientRepository persists client profiles under clients/{id}.
type ClientRepository interface {
	CreateClient(ctx context.Context, client *models.Client) error
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	GetClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, id string, fields map[string]any) error
	DeleteClient(ctx context.Context, id string) error
}

type clientRepository struct {
	db store.Store
}

// NewClientRepository creates a ClientRepository over the given store.
func NewClientRepository(db store.Store) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) CreateClient(ctx context.Context, client *models.Client) error {
	return translate(r.db.Write(ctx, clientsPath+"/"+client.ID, client))
}

func (r *clientRepository) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	if err := r.db.ReadOnce(ctx, clientsPath+"/"+id, &client); err != nil {
		return nil, translate(err)
	}
	client.ID = id
	return &client, nil
}

func (r *clientRepository) GetClients(ctx context.Context) ([]models.Client, error) {
	children, err := r.db.Query(ctx, clientsPath, store.ChildQuery{})
	if err != nil {
		return nil, translate(err)
	}
	clients := make([]models.Client, 0, len(children))
	for _, c := range children {
		var client models.Client
		if err := json.Unmarshal(c.Value, &client); err != nil {
			return nil, fmt.Errorf("%w: decode client %s: %v", ErrStoreError, c.Key, err)
		}
		client.ID = c.Key
		clients = append(clients, client)
	}
	return clients, nil
}

func (r *clientRepository) UpdateClient(ctx context.Context, id string, fields map[string]any) error {
	return translate(r.db.Update(ctx, clientsPath+"/"+id, fields))
}

func (r *clientRepository) DeleteClient(ctx context.Context, id string) error {
	// Membership, attendance and salary history reference the id but are
	// deliberately left in place as an audit trail.
	return translate(r.db.Delete(ctx, clientsPath+"/"+id))
}
