// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// ValidateCPF validates a Brazilian CPF, including its two check digits.
func ValidateCPF(cpf string) bool {
	digits := regexp.MustCompile(`[^0-9]`).ReplaceAllString(cpf, "")
	if len(digits) != 11 {
		return false
	}
	// All-equal digits pass the checksum but are not valid documents
	if strings.Count(digits, string(digits[0])) == 11 {
		return false
	}

	checkDigit := func(upto int) int {
		sum := 0
		for i := 0; i < upto; i++ {
			sum += int(digits[i]-'0') * (upto + 1 - i)
		}
		rest := sum % 11
		if rest < 2 {
			return 0
		}
		return 11 - rest
	}

	return checkDigit(9) == int(digits[9]-'0') && checkDigit(10) == int(digits[10]-'0')
}

// ValidatePostalCode accepts Brazilian CEPs: 12345-678 or 12345678.
func ValidatePostalCode(cep string) bool {
	match, _ := regexp.MatchString(`^\d{5}-?\d{3}$`, cep)
	return match
}

// ValidateUsername accepts 4-20 characters of letters, digits and underscore.
func ValidateUsername(username string) bool {
	match, _ := regexp.MatchString(`^[a-zA-Z0-9_]{4,20}$`, username)
	return match
}

// ValidatePassword enforces the password strength rules: at least 8
// characters with upper, lower, digit and special characters.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "password must be at least 8 characters long"
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	switch {
	case !hasUpper:
		return false, "password must contain at least one uppercase letter"
	case !hasLower:
		return false, "password must contain at least one lowercase letter"
	case !hasDigit:
		return false, "password must contain at least one digit"
	case !hasSpecial:
		return false, "password must contain at least one special character"
	}
	return true, ""
}
