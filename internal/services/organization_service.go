package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/blurrhq/hr-portal-api/internal/constants"
	"github.com/blurrhq/hr-portal-api/internal/models"
	"github.com/blurrhq/hr-portal-api/internal/repository"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
)

// OrganizationService provisions and resolves organizations. The portal
// runs with a single default organization that every user is attached to.
type OrganizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

// EnsureDefault finds or creates the default organization. The operation is
// idempotent: the unique name index means a concurrent bootstrap that loses
// the insert race can simply re-read the winner's row.
func (s *OrganizationService) EnsureDefault() (*models.Organization, error) {
	org, err := s.orgRepo.FindByName(constants.DefaultOrganizationName)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up default organization: %w", err)
	}

	org = &models.Organization{Name: constants.DefaultOrganizationName}
	if createErr := s.orgRepo.Create(org); createErr != nil {
		// Lost the race to another bootstrap; the row exists now.
		if existing, findErr := s.orgRepo.FindByName(constants.DefaultOrganizationName); findErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create default organization: %w", createErr)
	}

	return org, nil
}

// AttachUserToDefault backfills a user's organization membership when they
// have none yet.
func (s *OrganizationService) AttachUserToDefault(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.OrganizationID != nil {
		return user, nil
	}

	org, err := s.EnsureDefault()
	if err != nil {
		return nil, err
	}

	user.OrganizationID = &org.ID
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to attach user to organization: %w", err)
	}

	return user, nil
}

// Get returns an organization by ID.
func (s *OrganizationService) Get(id uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}
