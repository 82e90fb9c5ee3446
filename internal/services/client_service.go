package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/models"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/internal/repositories"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/timekey"
	"github.com/Ayush-Adhikrii/UI-UX-Cyber-Gym/pkg/utils"

	"github.com/google/uuid"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientValidation = errors.New("client data validation error")
)

// --- Client DTOs ---
type CreateClientRequest struct {
	Name             string `json:"name" binding:"required"`
	Gender           string `json:"gender" binding:"required"`
	Email            string `json:"email" binding:"required"`
	PhoneNumber      string `json:"phoneNumber" binding:"required"`
	Address          string `json:"address" binding:"required"`
	EmergencyContact string `json:"emergencyContact" binding:"required"`
	Image            string `json:"image" binding:"required"`
	Relation         string `json:"relation" binding:"required"`
}

type UpdateClientRequest struct {
	Name             *string `json:"name"`
	Gender           *string `json:"gender"`
	Email            *string `json:"email"`
	PhoneNumber      *string `json:"phoneNumber"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergencyContact"`
	Image            *string `json:"image"`
	Relation         *string `json:"relation"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)
	GetClients(ctx context.Context) ([]models.EnrichedClient, error)
	UpdateClient(ctx context.Context, clientID string, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
	GetAbsentClientsToday(ctx context.Context) ([]models.Client, error)
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo     repositories.ClientRepository
	membershipRepo repositories.MembershipRepository
	attendance     AttendanceService
	clock          *timekey.Clock
}

// NewClientService creates a new instance of ClientService.
func NewClientService(clientRepo repositories.ClientRepository, membershipRepo repositories.MembershipRepository, attendance AttendanceService, clock *timekey.Clock) ClientService {
	return &clientService{
		clientRepo:     clientRepo,
		membershipRepo: membershipRepo,
		attendance:     attendance,
		clock:          clock,
	}
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error) {
	for field, value := range map[string]string{
		"name": req.Name, "gender": req.Gender, "email": req.Email,
		"phoneNumber": req.PhoneNumber, "address": req.Address,
		"emergencyContact": req.EmergencyContact, "image": req.Image, "relation": req.Relation,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", ErrClientValidation, field)
		}
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrClientValidation)
	}

	client := &models.Client{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Gender:           req.Gender,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Image:            req.Image,
		Relation:         req.Relation,
	}
	if err := s.clientRepo.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// GetClients returns all clients enriched with their derived membership
// expiry. The open version's endDate wins (nil meaning open-ended); with no
// open version, the latest closed version's endDate counts only while it is
// still in the future.
func (s *clientService) GetClients(ctx context.Context) ([]models.EnrichedClient, error) {
	clients, err := s.clientRepo.GetClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	today := timekey.DateKey(s.clock.Now())
	enriched := make([]models.EnrichedClient, 0, len(clients))
	for _, client := range clients {
		expiry, err := s.membershipExpiry(ctx, client.ID, today)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, models.EnrichedClient{Client: client, MembershipExpiry: expiry})
	}
	return enriched, nil
}

func (s *clientService) membershipExpiry(ctx context.Context, clientID, today string) (*string, error) {
	current, err := s.membershipRepo.CurrentVersion(ctx, clientID)
	if err == nil {
		return current.EndDate, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up membership of %s: %w", clientID, err)
	}

	latest, err := s.membershipRepo.LatestVersion(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up membership of %s: %w", clientID, err)
	}
	// A closed version still shows its expiry while the end date has not
	// elapsed, even though its status already reads expired.
	if latest.EndDate != nil && *latest.EndDate > today {
		return latest.EndDate, nil
	}
	return nil, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID string, req UpdateClientRequest) (*models.Client, error) {
	if clientID == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrClientValidation)
	}
	if _, err := s.clientRepo.GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	fields := map[string]any{}
	setIfPresent(fields, "name", req.Name)
	setIfPresent(fields, "gender", req.Gender)
	setIfPresent(fields, "email", req.Email)
	setIfPresent(fields, "phoneNumber", req.PhoneNumber)
	setIfPresent(fields, "address", req.Address)
	setIfPresent(fields, "emergencyContact", req.EmergencyContact)
	setIfPresent(fields, "image", req.Image)
	setIfPresent(fields, "relation", req.Relation)

	if email, ok := fields["email"].(string); ok && !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: email format is invalid", ErrClientValidation)
	}
	if len(fields) > 0 {
		if err := s.clientRepo.UpdateClient(ctx, clientID, fields); err != nil {
			return nil, fmt.Errorf("failed to update client: %w", err)
		}
	}
	return s.clientRepo.GetClientByID(ctx, clientID)
}

func (s *clientService) DeleteClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return fmt.Errorf("%w: client id is required", ErrClientValidation)
	}
	if _, err := s.clientRepo.GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to find client for deletion: %w", err)
	}
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// GetAbsentClientsToday returns the clients with no attendance entry for
// today's date key.
func (s *clientService) GetAbsentClientsToday(ctx context.Context) ([]models.Client, error) {
	clients, err := s.clientRepo.GetClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	today := timekey.DateKey(s.clock.Now())
	present, err := s.attendance.PresentOn(ctx, repositories.KindClients, today)
	if err != nil {
		return nil, err
	}

	absent := []models.Client{}
	for _, client := range clients {
		if !present[client.ID] {
			absent = append(absent, client)
		}
	}
	return absent, nil
}

// setIfPresent copies an optional request field into the partial-update map.
func setIfPresent(fields map[string]any, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}
