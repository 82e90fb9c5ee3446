package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

const salariesPath = "salaries"

// SalaryRepository persists salary running totals under
// salaries/{staffId}/{monthKey}.
type SalaryRepository interface {
	// Get returns the record for one staff member and month, or ErrNotFound.
	Get(ctx context.Context, staffID, monthKey string) (*models.SalaryRecord, error)

	// Put replaces the record for one staff member and month.
	Put(ctx context.Context, record *models.SalaryRecord) error

	// MonthsOf returns all of one staff member's records keyed by month.
	MonthsOf(ctx context.Context, staffID string) ([]models.SalaryRecord, error)

	// StaffIDs lists every staff id with at least one salary record,
	// including ids whose staff document has since been deleted.
	StaffIDs(ctx context.Context) ([]string, error)
}

type salaryRepository struct {
	db store.Store
}

// NewSalaryRepository creates a SalaryRepository over the given store.
func NewSalaryRepository(db store.Store) SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) Get(ctx context.Context, staffID, monthKey string) (*models.SalaryRecord, error) {
	var record models.SalaryRecord
	if err := r.db.ReadOnce(ctx, salariesPath+"/"+staffID+"/"+monthKey, &record); err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *salaryRepository) Put(ctx context.Context, record *models.SalaryRecord) error {
	path := salariesPath + "/" + record.StaffID + "/" + record.Month
	return translate(r.db.Write(ctx, path, record))
}

func (r *salaryRepository) MonthsOf(ctx context.Context, staffID string) ([]models.SalaryRecord, error) {
	children, err := r.db.Query(ctx, salariesPath+"/"+staffID, store.ChildQuery{})
	if err != nil {
		return nil, translate(err)
	}
	records := make([]models.SalaryRecord, 0, len(children))
	for _, c := range children {
		var record models.SalaryRecord
		if err := json.Unmarshal(c.Value, &record); err != nil {
			return nil, fmt.Errorf("%w: decode salary %s: %v", ErrStoreError, c.Key, err)
		}
		record.StaffID = staffID
		record.Month = c.Key
		records = append(records, record)
	}
	return records, nil
}

func (r *salaryRepository) StaffIDs(ctx context.Context) ([]string, error) {
	ids, err := r.db.ChildKeys(ctx, salariesPath)
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}
