package currency

import "strings"

// Symbol maps an ISO currency code to the symbol shown next to prices.
// Unknown or empty codes fall back to "$".
func Symbol(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "USD", "CAD", "AUD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY", "CNY":
		return "¥"
	case "RUB":
		return "₽"
	default:
		return "$"
	}
}
