package auth

import (
	"strings"
	"unicode"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/validate"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const minPasswordLength = 8

// A short list is enough to stop the obvious choices.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {}, "letmein1": {},
	"admin123": {}, "abc12345": {}, "11111111": {}, "00000000": {}, "passw0rd": {},
	"trustno1": {}, "superman": {}, "starwars": {}, "dragon123": {}, "monkey123": {},
}

// ValidatePassword reports every policy the password breaks. attrs are the
// account's username, email and names; the password may not resemble them.
func ValidatePassword(c *validate.Checker, field, password string, attrs ...string) {
	if len([]rune(password)) < minPasswordLength {
		c.Add(field, "This password is too short. It must contain at least 8 characters.")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		c.Add(field, "This password is too common.")
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		c.Add(field, "This password is entirely numeric.")
	}
	lower := strings.ToLower(password)
	for _, a := range attrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if local, _, ok := strings.Cut(a, "@"); ok {
			a = local
		}
		if len(a) >= 3 && (strings.Contains(lower, a) || strings.Contains(a, lower)) {
			c.Add(field, "The password is too similar to your personal information.")
			break
		}
	}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NormalizeUsername applies NFKC so visually identical names collide.
func NormalizeUsername(username string) string {
	return norm.NFKC.String(strings.TrimSpace(username))
}

var lowerDomain = cases.Lower(language.Und)

// NormalizeEmail lowercases the domain part only.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	return local + "@" + lowerDomain.String(domain)
}

// ValidUsernameChars matches letters, digits and @.+-_ only.
func ValidUsernameChars(username string) bool {
	for _, r := range username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		return false
	}
	return true
}
