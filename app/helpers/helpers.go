package helpers

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

var uzPhoneRegex = regexp.MustCompile(`^\+998\d{9}$`)

// NormalizePhone strips spaces/dashes and rewrites the common local prefixes
// (998..., 8...) to the canonical +998XXXXXXXXX form. It does not validate.
func NormalizePhone(phone string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	switch {
	case strings.HasPrefix(cleaned, "+998"):
		return cleaned
	case strings.HasPrefix(cleaned, "998") && len(cleaned) == 12:
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "8") && len(cleaned) == 10:
		return "+998" + cleaned[1:]
	}
	return cleaned
}

// ValidUzPhone reports whether phone is a canonical Uzbek number.
func ValidUzPhone(phone string) bool {
	return uzPhoneRegex.MatchString(phone)
}

// RegisterValidations installs the custom rules request structs rely on.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("uzphone", func(fl validator.FieldLevel) bool {
		return ValidUzPhone(NormalizePhone(fl.Field().String()))
	})
}

// GenerateTokenKey produces a 40-char lowercase hex token key.
func GenerateTokenKey() (string, error) {
	raw := securecookie.GenerateRandomKey(20)
	if raw == nil {
		return "", fmt.Errorf("could not generate token key material")
	}
	return hex.EncodeToString(raw), nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := toSnake(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s is required.", field)
		case "uzphone":
			errorMessages[field] = fmt.Sprintf("%s must be a valid +998 phone number.", field)
		case "min":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s characters.", field, err.Param())
		case "max":
			errorMessages[field] = fmt.Sprintf("%s must be at most %s characters.", field, err.Param())
		case "eqfield":
			errorMessages[field] = fmt.Sprintf("%s does not match %s.", field, toSnake(err.Param()))
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s must be one of: %s.", field, err.Param())
		case "gte":
			errorMessages[field] = fmt.Sprintf("%s must be at least %s.", field, err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("%s failed %s validation.", field, err.Tag())
		}
	}
	return errorMessages
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var som = accounting.Accounting{Symbol: "so'm", Precision: 0, Thousand: " ", Format: "%v %s"}

// FormatSom renders a price for display, e.g. "1 250 000 so'm".
func FormatSom(amount decimal.Decimal) string {
	return som.FormatMoneyDecimal(amount)
}
