package utils

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

var randSource = rand.NewSource(time.Now().UnixNano())
var randGenerator = rand.New(randSource)

func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[randGenerator.Intn(len(charset))]
	}
	return string(b)
}

// Slugify başlığı URL dostu bir slug'a çevirir
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true // baştaki tire'yi engelle

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// GenerateEventURL slug + rastgele son ek ile paylaşım kodu üretir
func GenerateEventURL(title string) string {
	slug := Slugify(title)
	suffix := GenerateRandomString(6)
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
