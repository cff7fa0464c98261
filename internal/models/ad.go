package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdType string

const (
	AdTypeBanner       AdType = "banner"
	AdTypeInterstitial AdType = "interstitial"
	AdTypeRewarded     AdType = "rewarded"
)

// Revenue split between the viewing user and the platform.
const (
	AdUserSharePercent     = 1
	AdPlatformSharePercent = 99
)

// AdRevenueEvent records one monetized ad view and how its revenue was split.
// The user share is credited to the wallet in the same transaction.
type AdRevenueEvent struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID     uint            `gorm:"not null;index" json:"account_id"`
	AdType        AdType          `gorm:"size:20;not null" json:"ad_type"`
	Revenue       decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"revenue"`
	UserShare     decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"user_share"`
	PlatformShare decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"platform_share"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}

func (AdRevenueEvent) TableName() string {
	return "ad_revenue_events"
}

// AdImpression is an analytics row, one per ad shown. Not tied to revenue.
type AdImpression struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AdType    AdType    `gorm:"size:20;not null;index" json:"ad_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdImpression) TableName() string {
	return "ad_impressions"
}

// SplitRevenue applies the user/platform percentages to a gross amount.
func SplitRevenue(gross decimal.Decimal) (userShare, platformShare decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	userShare = gross.Mul(decimal.NewFromInt(AdUserSharePercent)).Div(hundred)
	platformShare = gross.Mul(decimal.NewFromInt(AdPlatformSharePercent)).Div(hundred)
	return userShare, platformShare
}
