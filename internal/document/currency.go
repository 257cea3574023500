package document

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indonesian = message.NewPrinter(language.Indonesian)

// FormatRupiah renders a monetary amount the way the shop prints it:
// grouped thousands, no decimals, "Rp" prefix (e.g. Rp150.000).
func FormatRupiah(d decimal.Decimal) string {
	return indonesian.Sprintf("Rp%v", number.Decimal(
		d.Round(0).IntPart(),
		number.MaxFractionDigits(0),
	))
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var jakarta = loadJakarta()

func loadJakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

// formatDate renders a date in the shop's locale, e.g. "31 Agustus 2026".
func formatDate(t time.Time) string {
	t = t.In(jakarta)
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// formatDeadline appends the time of day only when the order carries one.
func formatDeadline(t time.Time, hasTime bool) string {
	s := formatDate(t)
	if hasTime {
		s += t.In(jakarta).Format(" 15:04")
	}
	return s
}
