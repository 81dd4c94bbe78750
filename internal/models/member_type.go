package models

// MemberTypeID is the closed set of membership tiers.
type MemberTypeID string

const (
	MemberTypeBasic    MemberTypeID = "BASIC"
	MemberTypeBusiness MemberTypeID = "BUSINESS"
)

// MemberTypeIDs lists every tier in declaration order.
var MemberTypeIDs = []MemberTypeID{MemberTypeBasic, MemberTypeBusiness}

type MemberType struct {
	ID                 MemberTypeID `json:"id" gorm:"type:varchar(16);primaryKey"`
	Discount           float64      `json:"discount" gorm:"not null"`
	PostsLimitPerMonth int          `json:"postsLimitPerMonth" gorm:"not null"`
}

// DefaultMemberTypes are seeded on migration.
var DefaultMemberTypes = []MemberType{
	{ID: MemberTypeBasic, Discount: 2.3, PostsLimitPerMonth: 20},
	{ID: MemberTypeBusiness, Discount: 7.7, PostsLimitPerMonth: 100},
}
