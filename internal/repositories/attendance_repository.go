package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

const attendancePath = "attendance"

// PersonKind selects which attendance subtree a person belongs to.
type PersonKind string

const (
	KindClients PersonKind = "clients"
	KindStaff   PersonKind = "staff"
)

// AttendanceRepository persists presence flags under
// attendance/{kind}/{personId} as one document per person mapping
// dateKey -> true. Flags are only ever set, never cleared.
type AttendanceRepository interface {
	// Mark sets the presence flag for a person on a date. Idempotent.
	Mark(ctx context.Context, kind PersonKind, personID, dateKey string) error

	// All returns the whole subtree for a kind: personId -> dateKey -> true.
	All(ctx context.Context, kind PersonKind) (models.AttendanceMap, error)
}

type attendanceRepository struct {
	db store.Store
}

// NewAttendanceRepository creates an AttendanceRepository over the given store.
func NewAttendanceRepository(db store.Store) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func kindPath(kind PersonKind) string {
	return attendancePath + "/" + string(kind)
}

func (r *attendanceRepository) Mark(ctx context.Context, kind PersonKind, personID, dateKey string) error {
	return translate(r.db.Update(ctx, kindPath(kind)+"/"+personID, map[string]any{dateKey: true}))
}

func (r *attendanceRepository) All(ctx context.Context, kind PersonKind) (models.AttendanceMap, error) {
	children, err := r.db.Query(ctx, kindPath(kind), store.ChildQuery{})
	if err != nil {
		return nil, translate(err)
	}
	all := models.AttendanceMap{}
	for _, c := range children {
		days := map[string]bool{}
		if err := json.Unmarshal(c.Value, &days); err != nil {
			return nil, fmt.Errorf("%w: decode attendance %s: %v", ErrStoreError, c.Key, err)
		}
		all[c.Key] = days
	}
	return all, nil
}
