package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SiteConfig struct {
	WhatsAppPhone string          `json:"whatsapp_phone"`
	AliasOrCBU    string          `json:"alias_or_cbu"`
	ShippingCost  decimal.Decimal `json:"shipping_cost"`
	UpdatedAt     *time.Time      `json:"updated_at"`
}

type Announcement struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Active    bool       `json:"active"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	CreatedAt *time.Time `json:"created_at"`
}
