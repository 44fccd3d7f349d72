package checkout

import (
	"github.com/fekuna/omnipos-storefront/internal/i18n"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

// TransferInfo is shown after an order paid by bank transfer.
type TransferInfo struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	AliasOrCBU string `json:"alias_or_cbu"`
	Configured bool   `json:"configured"`
}

func NewTransferInfo(tr i18n.Translator, site *model.SiteConfig) *TransferInfo {
	info := &TransferInfo{
		Title:      tr.T("transfer.title", nil),
		Body:       tr.T("transfer.body", nil),
		AliasOrCBU: site.AliasOrCBU,
		Configured: site.AliasOrCBU != "",
	}
	if !info.Configured {
		info.AliasOrCBU = tr.T("transfer.missing", nil)
	}
	return info
}
