package utils

import "github.com/shopspring/decimal"

// MicroUnitExponent is the scale of stored amounts: one display unit equals
// 10^6 micro-units. Storage and transport always use the integer micro-unit
// form; formatting is only for human-facing output.
const MicroUnitExponent = 6

// FormatMicroAmount renders an integer micro-unit amount as a display-unit
// decimal string. Example: 100000000 -> "100", 1234500 -> "1.2345".
func FormatMicroAmount(amount int64) string {
	return decimal.New(amount, -MicroUnitExponent).String()
}
