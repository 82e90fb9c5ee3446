package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/store"
)

const membershipsPath = "memberships"

// MembershipRepository persists membership versions under
// memberships/{clientId}/{version}. Versions are append-only; CloseVersion is
// the single mutation ever applied to an existing one.
type MembershipRepository interface {
	// PutVersion writes a new membership version document.
	PutVersion(ctx context.Context, clientID, version string, mv *models.MembershipVersion) error

	// CloseVersion flips an open version to expired with the given end date.
	CloseVersion(ctx context.Context, clientID, version, endDate string) error

	// CurrentVersion returns the unique version with a null endDate, or
	// ErrNotFound when the client has no open membership.
	CurrentVersion(ctx context.Context, clientID string) (*models.VersionedMembership, error)

	// History returns all of a client's versions in version-key order.
	History(ctx context.Context, clientID string) ([]models.VersionedMembership, error)

	// LatestVersion returns the client's most recent version by version key,
	// or ErrNotFound when none exist.
	LatestVersion(ctx context.Context, clientID string) (*models.VersionedMembership, error)

	// ClientIDs lists every client id with at least one membership version.
	ClientIDs(ctx context.Context) ([]string, error)
}

type membershipRepository struct {
	db store.Store
}

// NewMembershipRepository creates a MembershipRepository over the given store.
func NewMembershipRepository(db store.Store) MembershipRepository {
	return &membershipRepository{db: db}
}

func clientMembershipsPath(clientID string) string {
	return membershipsPath + "/" + clientID
}

func (r *membershipRepository) PutVersion(ctx context.Context, clientID, version string, mv *models.MembershipVersion) error {
	return translate(r.db.Write(ctx, clientMembershipsPath(clientID)+"/"+version, mv))
}

func (r *membershipRepository) CloseVersion(ctx context.Context, clientID, version, endDate string) error {
	return translate(r.db.Update(ctx, clientMembershipsPath(clientID)+"/"+version, map[string]any{
		"endDate": endDate,
		"status":  models.MembershipExpired,
	}))
}

func (r *membershipRepository) CurrentVersion(ctx context.Context, clientID string) (*models.VersionedMembership, error) {
	children, err := r.db.Query(ctx, clientMembershipsPath(clientID), store.EqualTo("endDate", nil))
	if err != nil {
		return nil, translate(err)
	}
	if len(children) == 0 {
		return nil, ErrNotFound
	}
	return decodeVersion(children[0])
}

func (r *membershipRepository) History(ctx context.Context, clientID string) ([]models.VersionedMembership, error) {
	children, err := r.db.Query(ctx, clientMembershipsPath(clientID), store.ChildQuery{})
	if err != nil {
		return nil, translate(err)
	}
	history := make([]models.VersionedMembership, 0, len(children))
	for _, c := range children {
		vm, err := decodeVersion(c)
		if err != nil {
			return nil, err
		}
		history = append(history, *vm)
	}
	return history, nil
}

func (r *membershipRepository) LatestVersion(ctx context.Context, clientID string) (*models.VersionedMembership, error) {
	children, err := r.db.Query(ctx, clientMembershipsPath(clientID), store.ChildQuery{LimitToLast: 1})
	if err != nil {
		return nil, translate(err)
	}
	if len(children) == 0 {
		return nil, ErrNotFound
	}
	return decodeVersion(children[0])
}

func (r *membershipRepository) ClientIDs(ctx context.Context) ([]string, error) {
	ids, err := r.db.ChildKeys(ctx, membershipsPath)
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

func decodeVersion(c store.Child) (*models.VersionedMembership, error) {
	var vm models.VersionedMembership
	if err := json.Unmarshal(c.Value, &vm.MembershipVersion); err != nil {
		return nil, fmt.Errorf("%w: decode membership %s: %v", ErrStoreError, c.Key, err)
	}
	vm.Version = c.Key
	return &vm, nil
}
