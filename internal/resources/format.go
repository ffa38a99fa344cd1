package resources

import (
	"strings"
	"time"

	"github.com/ashendes/jewelry-admin/internal/models"
)

// vietnam is Asia/Ho_Chi_Minh without depending on the host's tzdata
var vietnam = time.FixedZone("ICT", 7*60*60)

// FormatCurrency renders an amount the way vi-VN formats VND, e.g. "1.500.000 ₫"
func FormatCurrency(amount models.Money) string {
	rounded := amount.Round(0)
	digits := rounded.Abs().StringFixed(0)

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteString(" ₫")
	return b.String()
}

// FormatDate renders a timestamp as dd/MM/yyyy HH:mm in Vietnam time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(vietnam).Format("02/01/2006 15:04")
}

// FormatDay renders the calendar day only
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(vietnam).Format("02/01/2006")
}
