package rutext

import (
	"fmt"
	"strings"
)

var (
	onesMasculine = [...]string{"", "один", "два", "три", "четыре", "пять",
		"шесть", "семь", "восемь", "девять"}
	onesFeminine = [...]string{"", "одна", "две", "три", "четыре", "пять",
		"шесть", "семь", "восемь", "девять"}
	teens = [...]string{"десять", "одиннадцать", "двенадцать", "тринадцать",
		"четырнадцать", "пятнадцать", "шестнадцать", "семнадцать",
		"восемнадцать", "девятнадцать"}
	tens = [...]string{"", "", "двадцать", "тридцать", "сорок", "пятьдесят",
		"шестьдесят", "семьдесят", "восемьдесят", "девяносто"}
	hundreds = [...]string{"", "сто", "двести", "триста", "четыреста",
		"пятьсот", "шестьсот", "семьсот", "восемьсот", "девятьсот"}
)

type scale struct {
	forms    [3]string // 1, 2-4, 5+
	feminine bool
}

var scales = [...]scale{
	{forms: [3]string{"тысяча", "тысячи", "тысяч"}, feminine: true},
	{forms: [3]string{"миллион", "миллиона", "миллионов"}},
	{forms: [3]string{"миллиард", "миллиарда", "миллиардов"}},
}

// pluralForm picks the Russian plural form index (0 for 1, 1 for 2-4,
// 2 otherwise) for the count n.
func pluralForm(n int64) int {
	n = n % 100
	if n >= 11 && n <= 14 {
		return 2
	}
	switch n % 10 {
	case 1:
		return 0
	case 2, 3, 4:
		return 1
	default:
		return 2
	}
}

// triad spells a number in 1..999 with the requested grammatical gender.
func triad(n int64, feminine bool) []string {
	var words []string
	if h := n / 100; h > 0 {
		words = append(words, hundreds[h])
	}
	rest := n % 100
	switch {
	case rest >= 10 && rest <= 19:
		words = append(words, teens[rest-10])
	default:
		if t := rest / 10; t > 0 {
			words = append(words, tens[t])
		}
		if o := rest % 10; o > 0 {
			if feminine {
				words = append(words, onesFeminine[o])
			} else {
				words = append(words, onesMasculine[o])
			}
		}
	}
	return words
}

// NumberInWords spells a non-negative integer in Russian. Supports values up
// to 999,999,999,999, which comfortably covers any payable amount this
// system produces.
func NumberInWords(n int64) string {
	if n == 0 {
		return "ноль"
	}
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}

	// Split into triads: units, thousands, millions, billions.
	var triads []int64
	for n > 0 {
		triads = append(triads, n%1000)
		n /= 1000
	}

	var words []string
	for i := len(triads) - 1; i >= 0; i-- {
		t := triads[i]
		if t == 0 {
			continue
		}
		if i == 0 {
			words = append(words, triad(t, false)...)
			continue
		}
		sc := scales[i-1]
		words = append(words, triad(t, sc.feminine)...)
		words = append(words, sc.forms[pluralForm(t)])
	}
	return strings.Join(words, " ")
}

var rubleForms = [3]string{"рубль", "рубля", "рублей"}

// AmountInWords renders a whole-ruble amount the way invoices spell totals:
// "один миллион триста тридцать три тысячи триста шестьдесят рублей 00
// копеек". Amounts in this system are always whole rubles, so the kopeck
// part is a fixed "00".
func AmountInWords(rubles int64) string {
	return fmt.Sprintf("%s %s 00 копеек",
		NumberInWords(rubles), rubleForms[pluralForm(rubles)])
}
