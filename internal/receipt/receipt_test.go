package receipt

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mkhusainov/checksplit/internal/ledger"
	"github.com/mkhusainov/checksplit/internal/models"
)

const (
	stars  = "******************************"
	dashes = "---------------------------"
)

func item(name string, price float64) models.FoodItem {
	return models.FoodItem{ID: uuid.New(), Name: name, Price: price}
}

func TestPaymentLink(t *testing.T) {
	got := PaymentLink("903020101", 3.85)
	want := "https://alifmobi.page.link/toMobi?account=903020101&amount=3.85"
	if got != want {
		t.Errorf("PaymentLink = %q, want %q", got, want)
	}
}

func TestFormatPerson(t *testing.T) {
	p := models.Person{
		ID:    uuid.New(),
		Name:  "Alice",
		Items: []models.FoodItem{item("Tea", 3.5)},
	}

	got := FormatPerson(p, 10.0, "903020101")

	want := strings.Join([]string{
		stars,
		"Счет для Alice:",
		stars,
		fmt.Sprintf("%-20s %-8s", "Tea", "3.50"),
		stars,
		"Итого: 3.50",
		"Итого + 10.00%: 3.85",
		stars,
		"https://alifmobi.page.link/toMobi?account=903020101&amount=3.85",
	}, "\n")

	if got != want {
		t.Errorf("FormatPerson mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatPerson_NoItems(t *testing.T) {
	p := models.Person{ID: uuid.New(), Name: "Bob"}

	got := FormatPerson(p, 10.0, "903020101")

	want := strings.Join([]string{
		stars,
		"Счет для Bob:",
		stars,
		stars,
		"Итого: 0.00",
		"Итого + 10.00%: 0.00",
		stars,
		"https://alifmobi.page.link/toMobi?account=903020101&amount=0.00",
	}, "\n")

	if got != want {
		t.Errorf("FormatPerson mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatLedger(t *testing.T) {
	snap := ledger.Snapshot{
		People: []models.Person{
			{ID: uuid.New(), Name: "Alice", Items: []models.FoodItem{item("Tea", 3.5)}},
			{ID: uuid.New(), Name: "Bob"},
		},
		Percentage:  10.0,
		PhoneNumber: "903020101",
	}

	got := FormatLedger(snap)

	want := strings.Join([]string{
		stars,
		"Общий счет:",
		stars,
		"Alice",
		dashes,
		fmt.Sprintf("%-20s %-8s", "Tea", "3.50"),
		dashes,
		"Итого: 3.50",
		"Итого + 10.00%: 3.85",
		"https://alifmobi.page.link/toMobi?account=903020101&amount=3.85",
		"",
		"Bob",
		dashes,
		dashes,
		"Итого: 0.00",
		"Итого + 10.00%: 0.00",
		"https://alifmobi.page.link/toMobi?account=903020101&amount=0.00",
		"",
		stars,
		"Общий итог: 3.50",
		"Общий итог + 10.00%: 3.85",
		stars,
	}, "\n")

	if got != want {
		t.Errorf("FormatLedger mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatLedger_Empty(t *testing.T) {
	snap := ledger.Snapshot{Percentage: 10.0, PhoneNumber: "903020101"}

	got := FormatLedger(snap)

	// With no people there are no per-person blocks, so the grand-total
	// divider follows the header divider directly.
	want := strings.Join([]string{
		stars,
		"Общий счет:",
		stars,
		stars,
		"Общий итог: 0.00",
		"Общий итог + 10.00%: 0.00",
		stars,
	}, "\n")

	if got != want {
		t.Errorf("FormatLedger mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "short name padded", in: "Tea", width: 20, want: "Tea" + strings.Repeat(" ", 17)},
		{name: "exact width unchanged", in: strings.Repeat("x", 20), width: 20, want: strings.Repeat("x", 20)},
		{name: "long name truncated", in: "Extra Large Pepperoni Pizza", width: 20, want: "Extra Large Pepperon"},
		{name: "cyrillic counted in runes", in: "Чай", width: 20, want: "Чай" + strings.Repeat(" ", 17)},
		{name: "price padded", in: "3.50", width: 8, want: "3.50    "},
		{name: "wide price truncated", in: "123456789.00", width: 8, want: "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pad(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("pad(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n != tt.width {
				t.Errorf("pad(%q, %d) has width %d", tt.in, tt.width, n)
			}
		})
	}
}
