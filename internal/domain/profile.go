package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan identifies a subscription tier
type Plan string

const (
	PlanFree Plan = "free"
	PlanPlus Plan = "plus"
	PlanPro  Plan = "pro"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanPlus, PlanPro:
		return true
	}
	return false
}

// Profile holds the professional data shown on the practitioner's account.
// One row per user, created empty on registration.
type Profile struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           string    `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	FullName         string    `json:"full_name"`
	Specialty        string    `json:"specialty"`
	CRM              string    `json:"crm" gorm:"column:crm"`
	Phone            string    `json:"phone"`
	AvatarURL        string    `json:"avatar_url"`
	Plan             Plan      `json:"plan" gorm:"type:varchar(16);default:free"`
	FeaturesExplored bool      `json:"features_explored" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Complete reports whether the onboarding "complete your profile" step
// counts as done: any of the professional fields is filled in.
func (p *Profile) Complete() bool {
	return p.FullName != "" || p.Specialty != "" || p.CRM != ""
}
