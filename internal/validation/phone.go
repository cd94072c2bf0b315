package validation

const (
	PhoneNonNumeric    = "Phone number must contain only numeric digits"
	PhoneWrongLength   = "Phone number must be exactly 10 digits"
	PhoneBadFirstDigit = "Phone number must start with 6, 7, 8, or 9"
)

// ValidatePhone checks a mobile number and returns the first failing rule's message,
// or "" when the number is acceptable. An empty string passes so partially filled
// forms show no error; callers that require a phone check emptiness themselves.
func ValidatePhone(phone string) string {
	if phone == "" {
		return ""
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return PhoneNonNumeric
		}
	}
	if len(phone) != 10 {
		return PhoneWrongLength
	}
	switch phone[0] {
	case '6', '7', '8', '9':
		return ""
	default:
		return PhoneBadFirstDigit
	}
}
