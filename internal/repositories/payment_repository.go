package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

const paymentHistoryPath = "paymentHistory"

// PaymentHistoryRepository appends immutable payment audit entries under
// paymentHistory/{clientId}/{version}. Entries are never updated or deleted.
type PaymentHistoryRepository interface {
	Append(ctx context.Context, clientID string, entry *models.PaymentHistoryEntry) error
	ListByClient(ctx context.Context, clientID string) ([]models.PaymentHistoryEntry, error)
}

type paymentHistoryRepository struct {
	db store.Store
}

// NewPaymentHistoryRepository creates a PaymentHistoryRepository over the given store.
func NewPaymentHistoryRepository(db store.Store) PaymentHistoryRepository {
	return &paymentHistoryRepository{db: db}
}

func (r *paymentHistoryRepository) Append(ctx context.Context, clientID string, entry *models.PaymentHistoryEntry) error {
	path := paymentHistoryPath + "/" + clientID + "/" + entry.MembershipVersion
	return translate(r.db.Write(ctx, path, entry))
}

func (r *paymentHistoryRepository) ListByClient(ctx context.Context, clientID string) ([]models.PaymentHistoryEntry, error) {
	children, err := r.db.Query(ctx, paymentHistoryPath+"/"+clientID, store.ChildQuery{})
	if err != nil {
		return nil, translate(err)
	}
	entries := make([]models.PaymentHistoryEntry, 0, len(children))
	for _, c := range children {
		var entry models.PaymentHistoryEntry
		if err := json.Unmarshal(c.Value, &entry); err != nil {
			return nil, fmt.Errorf("%w: decode payment %s: %v", ErrStoreError, c.Key, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
