// Package receipt renders ledger state into shareable plain-text
// receipts. The functions here are pure: they format snapshots and never
// touch ledger state.
//
// The layout is a fixed-width contract: item names occupy exactly 20
// characters and prices exactly 8, both space-padded and truncated when
// longer, with every amount formatted to two decimal places. Each
// per-person block ends with an alif mobi deep link pre-filled with the
// payee account and that person's adjusted total.
package receipt

import (
	"fmt"
	"strings"

	"github.com/mkhusainov/checksplit/internal/ledger"
	"github.com/mkhusainov/checksplit/internal/models"
)

const (
	paymentLinkBase = "https://alifmobi.page.link/toMobi"

	nameWidth  = 20
	priceWidth = 8

	heavyDivider = "******************************"
	lightDivider = "---------------------------"
)

// PaymentLink builds the alif mobi deep link for paying amount to the
// given account. The amount is formatted to two decimals.
func PaymentLink(phoneNumber string, amount float64) string {
	return fmt.Sprintf("%s?account=%s&amount=%.2f", paymentLinkBase, phoneNumber, amount)
}

// FormatPerson renders one person's receipt: header, one line per
// assigned item, totals with and without the service percentage, and a
// payment link for the adjusted total.
func FormatPerson(p models.Person, percentage float64, phoneNumber string) string {
	totalWithPercentage := p.TotalAmountWithPercentage(percentage)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nСчет для %s:\n%s", heavyDivider, p.Name, heavyDivider)
	writeItems(&b, p.Items)
	fmt.Fprintf(&b, "\n%s\nИтого: %.2f\nИтого + %.2f%%: %.2f\n%s\n%s",
		heavyDivider, p.TotalAmount(), percentage, totalWithPercentage, heavyDivider,
		PaymentLink(phoneNumber, totalWithPercentage))
	return b.String()
}

// FormatLedger renders the whole-group receipt: a block per person in
// ledger order, each with its own totals and payment link, followed by
// the grand totals. No combined payment link is emitted: the aggregate
// is informational, people pay their own share.
func FormatLedger(s ledger.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\nОбщий счет:\n%s", heavyDivider, heavyDivider)

	for _, p := range s.People {
		totalWithPercentage := p.TotalAmountWithPercentage(s.Percentage)
		fmt.Fprintf(&b, "\n%s\n%s", p.Name, lightDivider)
		writeItems(&b, p.Items)
		fmt.Fprintf(&b, "\n%s\nИтого: %.2f\nИтого + %.2f%%: %.2f\n%s\n",
			lightDivider, p.TotalAmount(), s.Percentage, totalWithPercentage,
			PaymentLink(s.PhoneNumber, totalWithPercentage))
	}

	fmt.Fprintf(&b, "\n%s\nОбщий итог: %.2f\nОбщий итог + %.2f%%: %.2f\n%s",
		heavyDivider, s.TotalAmount(), s.Percentage, s.TotalAmountWithPercentage(), heavyDivider)
	return b.String()
}

func writeItems(b *strings.Builder, items []models.FoodItem) {
	for _, item := range items {
		fmt.Fprintf(b, "\n%s %s",
			pad(item.Name, nameWidth),
			pad(fmt.Sprintf("%.2f", item.Price), priceWidth))
	}
}

// pad space-pads s to exactly width characters, truncating when longer.
// Widths count runes so Cyrillic dish names line up.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
