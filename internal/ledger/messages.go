package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/money"
)

const (
	TitleLimitExceeded    = "İstisna Limiti Aşıldı"
	TitleLimitApproaching = "Limite Yaklaşıyorsunuz"
)

// thresholdAlert builds the notification for a non-normal status. The zero
// Notification is returned for normal.
func thresholdAlert(p domain.ThresholdPolicy, status domain.ThresholdStatus, total decimal.Decimal) domain.Notification {
	switch status {
	case domain.ThresholdExceeded:
		return domain.Notification{
			Title: TitleLimitExceeded,
			Message: fmt.Sprintf("Toplam geliriniz %s limitini aştı. Mali müşavir tutmanız gerekebilir.",
				money.TL(p.Limit)),
			Severity: domain.SeverityWarning,
		}
	case domain.ThresholdApproaching:
		return domain.Notification{
			Title: TitleLimitApproaching,
			Message: fmt.Sprintf("Mevcut geliriniz %s. Limite %s kaldı.",
				money.TL(total), money.TL(p.Headroom(total))),
			Severity: domain.SeverityInfo,
		}
	default:
		return domain.Notification{}
	}
}
