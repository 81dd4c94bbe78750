package models

// Subscription is a directed follow edge: SubscriberID follows AuthorID.
type Subscription struct {
	SubscriberID string `json:"subscriberId" gorm:"type:uuid;primaryKey"`
	AuthorID     string `json:"authorId" gorm:"type:uuid;primaryKey;index"`
}

func (Subscription) TableName() string {
	return "subscribers_on_authors"
}
