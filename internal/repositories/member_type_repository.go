package repositories

import (
	"context"

	"github.com/anonto42/nano-midea/gateway/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberTypeRepository defines the interface for member tier lookups.
// Tiers are seeded, never written through the API.
type MemberTypeRepository interface {
	GetMemberTypes(ctx context.Context) ([]*models.MemberType, error)
	GetMemberTypeByID(ctx context.Context, id models.MemberTypeID) (*models.MemberType, error)
	FindByIDs(ctx context.Context, ids []models.MemberTypeID) ([]*models.MemberType, error)
}

type PostgresMemberTypeRepository struct {
	db *gorm.DB
}

func NewPostgresMemberTypeRepository(db *gorm.DB) *PostgresMemberTypeRepository {
	return &PostgresMemberTypeRepository{db: db}
}

func (r *PostgresMemberTypeRepository) GetMemberTypes(ctx context.Context) ([]*models.MemberType, error) {
	var memberTypes []*models.MemberType
	if err := r.db.WithContext(ctx).Order("id").Find(&memberTypes).Error; err != nil {
		return nil, translate(err, "list member types")
	}
	return memberTypes, nil
}

func (r *PostgresMemberTypeRepository) GetMemberTypeByID(ctx context.Context, id models.MemberTypeID) (*models.MemberType, error) {
	var memberType models.MemberType
	if err := r.db.WithContext(ctx).First(&memberType, "id = ?", string(id)).Error; err != nil {
		return nil, translate(err, "member type")
	}
	return &memberType, nil
}

func (r *PostgresMemberTypeRepository) FindByIDs(ctx context.Context, ids []models.MemberTypeID) ([]*models.MemberType, error) {
	var memberTypes []*models.MemberType
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&memberTypes).Error; err != nil {
		return nil, translate(err, "find member types")
	}
	return memberTypes, nil
}

// seedMemberTypes inserts the default tiers, keeping rows that already exist.
func seedMemberTypes(ctx context.Context, db *gorm.DB) error {
	rows := append([]models.MemberType(nil), models.DefaultMemberTypes...)
	err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	return translate(err, "seed member types")
}
