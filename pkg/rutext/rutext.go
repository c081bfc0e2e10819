// Package rutext renders Russian document text: amounts in words, genitive
// month names and shortened personal names for signature blocks.
package rutext

import (
	"fmt"
	"strings"
	"time"
)

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// MonthGenitive returns the Russian genitive name of a month, as used in
// document dates ("10 августа 2025 г.").
func MonthGenitive(m time.Month) string {
	if m < time.January || m > time.December {
		return monthsGenitive[0]
	}
	return monthsGenitive[m-1]
}

// DocumentDate renders a date the way Russian documents spell it out,
// e.g. "10 августа 2025".
func DocumentDate(d time.Time) string {
	return fmt.Sprintf("%02d %s %d", d.Day(), MonthGenitive(d.Month()), d.Year())
}

// ShortName converts "LASTNAME FIRSTNAME PATRONYMIC" to the signature form
// "F.P. LASTNAME". Anything that is not exactly three words is returned
// unchanged.
func ShortName(full string) string {
	parts := strings.Fields(full)
	if len(parts) != 3 {
		return full
	}
	first := []rune(parts[1])
	patronymic := []rune(parts[2])
	return fmt.Sprintf("%c.%c. %s", first[0], patronymic[0], parts[0])
}
