package checkout

import (
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/pricing"
)

// dateLayout matches how es-AR prints a date and time: 9/3/2025, 18:04:05.
const dateLayout = "2/1/2006, 15:04:05"

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// buildMessage renders the order summary sent over WhatsApp. Item lines are
// priced at list price while the subtotal uses offer prices.
func (o *Orchestrator) buildMessage(ord *model.Order, form *model.CheckoutForm, lines []model.CartLine) string {
	created := o.now()
	if ord.CreatedAt != nil {
		created = *ord.CreatedAt
	}

	paymentLabel := o.tr.T("payment.transfer", nil)
	if ord.PaymentMethod == model.PaymentCash {
		paymentLabel = o.tr.T("payment.cash", nil)
	}

	delivery := ord.DeliveryMethod
	if delivery == "" {
		delivery = form.DeliveryMethod
	}
	pickup := delivery == model.DeliveryPickup
	deliveryLabel := o.tr.T("delivery.delivery", nil)
	if pickup {
		deliveryLabel = o.tr.T("delivery.pickup", nil)
	}

	userAddress := form.Address
	if userAddress == "" {
		userAddress = ord.Address
	}
	mapsLink := mapsSearchURL + escapeComponent(userAddress)
	if pickup {
		mapsLink = mapsSearchURL + escapeComponent(o.shop.Address)
	}

	out := []string{
		o.tr.T("summary.greeting", nil), "",
		o.tr.T("summary.order", map[string]any{"ID": ord.ID}),
		o.tr.T("summary.shop", map[string]any{"Shop": o.shop.Name}),
		o.tr.T("summary.date", map[string]any{"Date": created.In(o.shop.Location).Format(dateLayout)}),
		o.tr.T("summary.name", map[string]any{"Name": ord.Name}),
		o.tr.T("summary.phone", map[string]any{"Phone": ord.Phone}),
		"",
		o.tr.T("summary.payment", map[string]any{"Label": paymentLabel}),
		o.tr.T("summary.total", map[string]any{"Amount": pricing.FormatARS(ord.Total)}),
		"",
		o.tr.T("summary.delivery", map[string]any{"Label": deliveryLabel}),
	}
	if !pickup && userAddress != "" {
		out = append(out, o.tr.T("summary.address", map[string]any{"Address": userAddress}))
	}
	if pickup {
		out = append(out, o.tr.T("summary.pickup", map[string]any{"Address": o.shop.Address}))
	}
	out = append(out,
		o.tr.T("summary.location", map[string]any{"Link": mapsLink}),
		"",
		o.tr.T("summary.items", nil),
	)
	for i := range lines {
		out = append(out, o.tr.T("summary.item", map[string]any{
			"Quantity": lines[i].Quantity,
			"Name":     lines[i].Product.Name,
			"Amount":   pricing.FormatARS(lines[i].ListTotal()),
		}))
	}
	out = append(out, "", o.tr.T("summary.subtotal", map[string]any{"Amount": pricing.FormatARS(pricing.Subtotal(lines))}))

	return strings.Join(out, "\n")
}
