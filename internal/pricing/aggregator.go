package pricing

import (
	"github.com/fekuna/omnipos-storefront/internal/coupon"
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

const (
	labelMaxRunes  = 34
	labelKeepRunes = 31
)

type Input struct {
	Lines          []model.CartLine
	Coupon         *model.CouponInfo
	DeliveryMethod model.DeliveryMethod
	BaseShipping   decimal.Decimal
}

type Saving struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary is the checkout breakdown. Only Subtotal, Discount and Shipping
// feed Total; the savings lines are display only.
type Summary struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	CouponActive    bool            `json:"coupon_active"`
	ProductSavings  []Saving        `json:"product_savings"`
	ShippingSavings *Saving         `json:"shipping_savings,omitempty"`
	CouponSavings   *Saving         `json:"coupon_savings,omitempty"`
}

type Aggregator struct {
	tr i18n.Translator
}

func NewAggregator(tr i18n.Translator) *Aggregator {
	return &Aggregator{tr: tr}
}

func (a *Aggregator) Aggregate(in Input) Summary {
	subtotal := Subtotal(in.Lines)
	res := coupon.Evaluate(in.Coupon, subtotal, in.DeliveryMethod, in.BaseShipping)

	s := Summary{
		Subtotal:       subtotal,
		Discount:       res.Discount,
		Shipping:       res.Shipping,
		Total:          decimal.Max(decimal.Zero, subtotal.Sub(res.Discount).Add(res.Shipping)),
		CouponActive:   res.Active,
		ProductSavings: a.productSavings(in.Lines),
	}

	if in.DeliveryMethod == model.DeliveryHome && res.FreeShipping && in.BaseShipping.IsPositive() {
		s.ShippingSavings = &Saving{Label: a.tr.T("pricing.free_shipping", nil), Amount: in.BaseShipping}
	}
	if res.Discount.IsPositive() {
		s.CouponSavings = &Saving{Label: a.couponLabel(in.Coupon), Amount: res.Discount}
	}
	return s
}

// Subtotal sums offer-aware line totals.
func Subtotal(lines []model.CartLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].Total())
	}
	return total
}

func (a *Aggregator) productSavings(lines []model.CartLine) []Saving {
	out := []Saving{}
	for i := range lines {
		p := lines[i].Product
		if p.OfferPrice == nil {
			continue
		}
		diff := decimal.Max(decimal.Zero, p.Price.Sub(*p.OfferPrice)).Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		if !diff.IsPositive() {
			continue
		}
		name := p.Name
		if name == "" {
			name = a.tr.T("pricing.product", nil)
		}
		out = append(out, Saving{Label: shorten(name), Amount: diff})
	}
	return out
}

func (a *Aggregator) couponLabel(info *model.CouponInfo) string {
	label := a.tr.T("pricing.coupon", nil)
	if info.Type == model.CouponPercent {
		label = a.tr.T("pricing.coupon_percent", map[string]any{"Percent": info.Percent.String()})
	}
	if info.Name != "" {
		label += " · " + info.Name
	}
	return label
}

func shorten(name string) string {
	r := []rune(name)
	if len(r) <= labelMaxRunes {
		return name
	}
	return string(r[:labelKeepRunes]) + "…"
}
