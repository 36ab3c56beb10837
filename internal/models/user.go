package models

import "time"

const (
	PlanTierRegular       = "Regular"
	PlanTierPremium       = "Premium"
	PlanTierInternational = "International"
)

const PlanCustom = "custom"

func IsPlanTier(v string) bool {
	switch v {
	case PlanTierRegular, PlanTierPremium, PlanTierInternational:
		return true
	}
	return false
}

// User is a subscriber account managed by admins.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	FullName string `gorm:"type:varchar(100)" json:"fullName,omitempty"`
	Mobile   string `gorm:"type:varchar(20);not null;uniqueIndex" json:"mobile"`
	City     string `gorm:"type:varchar(100)" json:"city,omitempty"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`

	Subscription Subscription `gorm:"embedded;embeddedPrefix:subscription_" json:"subscription"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

type Subscription struct {
	Plan              string     `gorm:"type:varchar(20)" json:"plan,omitempty"`
	PlanTier          string     `gorm:"type:varchar(20);index" json:"planTier,omitempty"`
	MaxTargetsVisible *int       `json:"maxTargetsVisible,omitempty"`
	StartDate         *time.Time `gorm:"type:timestamptz" json:"startDate,omitempty"`
	EndDate           *time.Time `gorm:"type:timestamptz;index" json:"endDate,omitempty"`
	IsActive          bool       `gorm:"not null;default:false" json:"isActive"`
	IsUnlimited       bool       `gorm:"not null;default:false" json:"isUnlimited"`
}

// ActiveAt reports whether the subscription grants access at now.
func (s Subscription) ActiveAt(now time.Time) bool {
	if !s.IsActive {
		return false
	}
	if s.IsUnlimited {
		return true
	}
	return s.EndDate != nil && s.EndDate.After(now)
}

// TierDescriptor is the read-only plan information the visibility projector
// consumes. It is resolved per request and never stored on a call.
type TierDescriptor struct {
	PlanTier          string
	MaxTargetsVisible *int
}

func (u User) Tier() TierDescriptor {
	return TierDescriptor{
		PlanTier:          u.Subscription.PlanTier,
		MaxTargetsVisible: u.Subscription.MaxTargetsVisible,
	}
}
