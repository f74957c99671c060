package auth

import (
	"regexp"
	"strings"

	"github.com/trezcool/meritum/core"
)

var (
	// publicProviders holds well-known free-mail domains; any other domain is
	// treated as institutional.
	publicProviders = map[string]struct{}{
		"gmail.com":      {},
		"googlemail.com": {},
		"yahoo.com":      {},
		"hotmail.com":    {},
		"outlook.com":    {},
		"icloud.com":     {},
		"protonmail.com": {},
		"aol.com":        {},
		"live.com":       {},
		"mail.com":       {},
	}

	// canonical matric formats: S12345, DP121234, GS12345 or 5 digits alone
	canonicalMatricRegex = regexp.MustCompile(`^(S\d{5}|DP\d{6}|GS\d{5}|\d{5})$`)
	// looser pattern accepted when auto-detecting from institutional emails
	flexibleMatricRegex = regexp.MustCompile(`^[A-Z]\d{4,9}$`)
)

// SanitizeEmailKey lowers `email` and replaces every '.' with ',' so it can be
// used as a document key. ',' is never valid in an email address, so the
// transform is unambiguous and reversible.
func SanitizeEmailKey(email string) string {
	return strings.ReplaceAll(strings.ToLower(email), ".", ",")
}

// UnsanitizeKey reverses SanitizeEmailKey.
func UnsanitizeKey(key string) string {
	return strings.ReplaceAll(key, ",", ".")
}

// EmailDomain returns the lower-cased domain part of `email`.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// IsPublicProvider reports whether the email's domain belongs to a well-known
// free-mail provider.
func IsPublicProvider(email string) bool {
	_, ok := publicProviders[EmailDomain(email)]
	return ok
}

// ExtractMatricToken derives a candidate matric number from the email
// local-part: plus-addressing suffix stripped, dots removed, upper-cased.
func ExtractMatricToken(email string) string {
	local := email
	if at := strings.LastIndex(email, "@"); at >= 0 {
		local = email[:at]
	}
	if plus := strings.Index(local, "+"); plus >= 0 {
		local = local[:plus]
	}
	local = strings.ReplaceAll(local, ".", "")
	return strings.ToUpper(strings.TrimSpace(local))
}

// ValidateMatric reports whether `matric` is in canonical form.
func ValidateMatric(matric string) bool {
	return canonicalMatricRegex.MatchString(strings.ToUpper(matric))
}

// LooksLikeMatric is the flexible check applied to auto-detected tokens.
func LooksLikeMatric(matric string) bool {
	m := strings.ToUpper(matric)
	return canonicalMatricRegex.MatchString(m) || flexibleMatricRegex.MatchString(m)
}

// CleanDisplayName strips organizational suffixes commonly appended by the
// identity provider (anything after '/', '|' or '-') and title-cases the rest.
func CleanDisplayName(name string) string {
	if i := strings.IndexAny(name, "/|-"); i >= 0 {
		name = name[:i]
	}
	return core.TitleCaseWords(name)
}

// EmailLocalPart returns the part of `email` before '@'; used as a display
// name fallback.
func EmailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
