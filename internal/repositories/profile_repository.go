package repositories

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetProfiles(ctx context.Context) ([]*models.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []string) ([]*models.Profile, error)
	FindByMemberTypeIDs(ctx context.Context, ids []models.MemberTypeID) ([]*models.Profile, error)
	UpdateProfile(ctx context.Context, id string, req models.ChangeProfileRequest) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id string) (*models.Profile, error)
}

// PostgresProfileRepository implements ProfileRepository with GORM
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	return translate(r.db.WithContext(ctx).Create(profile).Error, "create profile")
}

func (r *PostgresProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err, "profile")
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) GetProfiles(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, translate(err, "list profiles")
	}
	return profiles, nil
}

func (r *PostgresProfileRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, translate(err, "find profiles")
	}
	return profiles, nil
}

func (r *PostgresProfileRepository) FindByMemberTypeIDs(ctx context.Context, ids []models.MemberTypeID) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.db.WithContext(ctx).Where("member_type_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, translate(err, "find profiles")
	}
	return profiles, nil
}

func (r *PostgresProfileRepository) UpdateProfile(ctx context.Context, id string, req models.ChangeProfileRequest) (*models.Profile, error) {
	updates := map[string]interface{}{}
	if req.IsMale != nil {
		updates["is_male"] = *req.IsMale
	}
	if req.YearOfBirth != nil {
		updates["year_of_birth"] = *req.YearOfBirth
	}
	if req.MemberTypeID != nil {
		updates["member_type_id"] = string(*req.MemberTypeID)
	}
	return updateByID[models.Profile](ctx, r.db, id, updates, "profile")
}

// DeleteProfile deletes a profile by ID and returns the deleted row
func (r *PostgresProfileRepository) DeleteProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&profile, "id = ?", id).Error; err != nil {
			return translate(err, "profile")
		}
		return translate(tx.Delete(&profile).Error, "delete profile")
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
