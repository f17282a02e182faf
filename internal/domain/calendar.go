package domain

import (
	"math"
	"sort"
	"time"
)

// DeadlineType categorises a tax calendar item.
type DeadlineType string

const (
	DeadlineTypeDeadline    DeadlineType = "deadline"
	DeadlineTypePayment     DeadlineType = "payment"
	DeadlineTypeDeclaration DeadlineType = "declaration"
)

// TaxDeadline is one dated item on the tax calendar.
type TaxDeadline struct {
	Date        time.Time
	Title       string
	Description string
	Type        DeadlineType
	DaysLeft    int
}

var taxCalendar = []TaxDeadline{
	{Date: mustDate("2025-11-25"), Title: "Kasım Ayı KDV Beyannamesi", Description: "Kasım ayı KDV beyannamesinin verilmesi ve ödenmesi", Type: DeadlineTypeDeadline},
	{Date: mustDate("2025-12-01"), Title: "Sosyal Güvenlik Primi Ödemesi", Description: "Kasım ayı SGK primlerinin ödenmesi", Type: DeadlineTypePayment},
	{Date: mustDate("2025-12-25"), Title: "Aralık Ayı KDV Beyannamesi", Description: "Aralık ayı KDV beyannamesinin verilmesi", Type: DeadlineTypeDeclaration},
	{Date: mustDate("2026-01-31"), Title: "2025 Yıllık Gelir Vergisi Beyannamesi", Description: "2025 yılı gelir vergisi beyannamesinin verilme tarihi", Type: DeadlineTypeDeadline},
	{Date: mustDate("2026-03-01"), Title: "Gelir Vergisi Birinci Taksit", Description: "2025 yılı gelir vergisi 1. taksit ödeme tarihi", Type: DeadlineTypePayment},
}

// UpcomingDeadlines returns the calendar with DaysLeft computed against now,
// soonest first. Past items have a negative DaysLeft.
func UpcomingDeadlines(now time.Time) []TaxDeadline {
	out := make([]TaxDeadline, len(taxCalendar))
	copy(out, taxCalendar)

	for i := range out {
		out[i].DaysLeft = daysUntil(now, out[i].Date)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLeft < out[j].DaysLeft
	})

	return out
}

func daysUntil(now, target time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

func mustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
