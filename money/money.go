// Package money renders prices the way the storefront shows them: whole
// roubles, ru-RU digit grouping and the rouble sign.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	Currency = "RUB"
	Symbol   = "₽"
	nbsp     = "\u00a0"
)

var printer = message.NewPrinter(language.Russian)

// Format renders amount, e.g. 12990 as "12 990 ₽" with non-breaking spaces.
func Format(amount int64) string {
	return printer.Sprintf("%d", amount) + nbsp + Symbol
}
