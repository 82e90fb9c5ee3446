package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"
)

// --- Custom Service Errors for Membership ---
var (
	ErrMembershipValidation = errors.New("membership data validation error")
	ErrNoActiveMembership   = errors.New("no active membership found")
	ErrMembershipOpen       = errors.New("client already has an active membership")
)

// --- Membership DTOs ---

// MembershipRequest is the payload for both creating the first membership and
// renewing (superseding) the current one.
type MembershipRequest struct {
	ClientID      string  `json:"clientId" binding:"required"`
	StartDate     string  `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate       *string `json:"endDate"`                      // YYYY-MM-DD, null = open-ended
	PaymentAmount float64 `json:"paymentAmount" binding:"required"`
}

// --- MembershipService Interface ---

// MembershipService maintains the per-client membership version ledger.
// Invariant: a client has at most one version with a null endDate.
type MembershipService interface {
	CreateMembership(ctx context.Context, req MembershipRequest) (*models.VersionedMembership, error)
	UpdateMembership(ctx context.Context, req MembershipRequest) (*models.VersionedMembership, error)
	GetCurrentMembership(ctx context.Context, clientID string) (*models.VersionedMembership, error)
	GetMembershipHistory(ctx context.Context, clientID string) ([]models.VersionedMembership, error)
	GetPaymentHistory(ctx context.Context, clientID string) ([]models.PaymentHistoryEntry, error)
}

// --- membershipService Implementation ---
type membershipService struct {
	membershipRepo repositories.MembershipRepository
	paymentRepo    repositories.PaymentHistoryRepository
	clock          *timekey.Clock

	// mu guards locks; each client's ledger mutations serialize behind its
	// own mutex so two concurrent renewals cannot both observe the same
	// open version and produce duplicates.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(membershipRepo repositories.MembershipRepository, paymentRepo repositories.PaymentHistoryRepository, clock *timekey.Clock) MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		clock:          clock,
		locks:          make(map[string]*sync.Mutex),
	}
}

func (s *membershipService) clientLock(clientID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[clientID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[clientID] = l
	}
	return l
}

func validateMembershipRequest(req MembershipRequest) error {
	if req.ClientID == "" || req.StartDate == "" {
		return fmt.Errorf("%w: clientId and startDate are required", ErrMembershipValidation)
	}
	if !timekey.DateKeyPattern.MatchString(req.StartDate) {
		return fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrMembershipValidation)
	}
	if _, err := timekey.ParseDateKey(req.StartDate); err != nil {
		return fmt.Errorf("%w: %v", ErrMembershipValidation, err)
	}
	if req.EndDate != nil {
		if !timekey.DateKeyPattern.MatchString(*req.EndDate) {
			return fmt.Errorf("%w: endDate must be YYYY-MM-DD", ErrMembershipValidation)
		}
		if _, err := timekey.ParseDateKey(*req.EndDate); err != nil {
			return fmt.Errorf("%w: %v", ErrMembershipValidation, err)
		}
	}
	if math.IsNaN(req.PaymentAmount) || math.IsInf(req.PaymentAmount, 0) || req.PaymentAmount == 0 {
		return fmt.Errorf("%w: paymentAmount must be a finite, non-zero number", ErrMembershipValidation)
	}
	return nil
}

func (s *membershipService) newVersion(req MembershipRequest) (string, *models.MembershipVersion) {
	version := s.clock.VersionKey()
	return version, &models.MembershipVersion{
		ClientID:      req.ClientID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		PaymentAmount: req.PaymentAmount,
		Status:        models.MembershipActive,
		CreatedAt:     s.clock.Now().UTC().Format(time.RFC3339),
	}
}

func (s *membershipService) appendPayment(ctx context.Context, clientID, version string, amount float64) error {
	entry := &models.PaymentHistoryEntry{
		MembershipVersion: version,
		Amount:            amount,
		PaymentDate:       s.clock.Now().UTC().Format(time.RFC3339),
		Status:            "paid",
	}
	if err := s.paymentRepo.Append(ctx, clientID, entry); err != nil {
		return fmt.Errorf("failed to append payment history: %w", err)
	}
	return nil
}

// CreateMembership opens the client's first membership version. When the
// client already has an open version it rejects with ErrMembershipOpen:
// superseding goes through UpdateMembership, which closes the predecessor.
func (s *membershipService) CreateMembership(ctx context.Context, req MembershipRequest) (*models.VersionedMembership, error) {
	if err := validateMembershipRequest(req); err != nil {
		return nil, err
	}

	lock := s.clientLock(req.ClientID)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.membershipRepo.CurrentVersion(ctx, req.ClientID)
	if err == nil {
		return nil, ErrMembershipOpen
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check current membership: %w", err)
	}

	version, mv := s.newVersion(req)
	if err := s.membershipRepo.PutVersion(ctx, req.ClientID, version, mv); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	// A store failure here leaves a version without its audit entry; the
	// error propagates and no repair is attempted.
	if err := s.appendPayment(ctx, req.ClientID, version, req.PaymentAmount); err != nil {
		return nil, err
	}
	return &models.VersionedMembership{Version: version, MembershipVersion: *mv}, nil
}

// UpdateMembership supersedes the client's open version: the old version is
// closed with endDate = new startDate minus one day and flipped to expired,
// then the new version is written. A payment entry is appended only when the
// amount changed relative to the closed version.
func (s *membershipService) UpdateMembership(ctx context.Context, req MembershipRequest) (*models.VersionedMembership, error) {
	if err := validateMembershipRequest(req); err != nil {
		return nil, err
	}

	lock := s.clientLock(req.ClientID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.membershipRepo.CurrentVersion(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveMembership
		}
		return nil, fmt.Errorf("failed to look up current membership: %w", err)
	}

	closingDate, err := timekey.AddDays(req.StartDate, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMembershipValidation, err)
	}
	if err := s.membershipRepo.CloseVersion(ctx, req.ClientID, current.Version, closingDate); err != nil {
		return nil, fmt.Errorf("failed to close membership version %s: %w", current.Version, err)
	}

	version, mv := s.newVersion(req)
	if err := s.membershipRepo.PutVersion(ctx, req.ClientID, version, mv); err != nil {
		return nil, fmt.Errorf("failed to write membership version: %w", err)
	}

	if req.PaymentAmount != current.PaymentAmount {
		if err := s.appendPayment(ctx, req.ClientID, version, req.PaymentAmount); err != nil {
			return nil, err
		}
	}
	return &models.VersionedMembership{Version: version, MembershipVersion: *mv}, nil
}

func (s *membershipService) GetCurrentMembership(ctx context.Context, clientID string) (*models.VersionedMembership, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrMembershipValidation)
	}
	current, err := s.membershipRepo.CurrentVersion(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveMembership
		}
		return nil, fmt.Errorf("failed to look up current membership: %w", err)
	}
	return current, nil
}

func (s *membershipService) GetMembershipHistory(ctx context.Context, clientID string) ([]models.VersionedMembership, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrMembershipValidation)
	}
	history, err := s.membershipRepo.History(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to read membership history: %w", err)
	}
	return history, nil
}

func (s *membershipService) GetPaymentHistory(ctx context.Context, clientID string) ([]models.PaymentHistoryEntry, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrMembershipValidation)
	}
	entries, err := s.paymentRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment history: %w", err)
	}
	return entries, nil
}
