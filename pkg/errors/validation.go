package errors

import (
	"strings"
	"unicode"
)

// ValidateAtomLabel validates an atom label from the notation.
// Labels are one-or-more word characters (letters, digits, underscore),
// e.g. "C1", "H11", "N". The element symbol is derived from the first rune,
// so labels must start with a letter.
func ValidateAtomLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidStatement, "atom label cannot be empty")
	}

	if len(label) > 64 {
		return New(ErrCodeInvalidStatement, "atom label too long (max 64 characters): %q", label)
	}

	for i, r := range label {
		if i == 0 && !unicode.IsLetter(r) {
			return New(ErrCodeInvalidStatement, "atom label must start with a letter: %q", label)
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return New(ErrCodeInvalidStatement, "atom label contains invalid character %q: %q", r, label)
		}
	}

	return nil
}

// ValidateCharge validates a charge annotation, the brace-delimited text that
// follows an atom label (e.g. "{+}", "{2-}"). The annotation is free-form and
// echoed verbatim when rendering; validation only guards the delimiters and
// rejects control characters.
func ValidateCharge(charge string) error {
	if charge == "" {
		return nil
	}

	if !strings.HasPrefix(charge, "{") || !strings.HasSuffix(charge, "}") {
		return New(ErrCodeInvalidStatement, "charge annotation must be brace-delimited: %q", charge)
	}

	for _, r := range charge {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStatement, "charge annotation contains control characters")
		}
	}

	return nil
}

// ValidateNotation performs cheap sanity checks on raw notation text before
// parsing: non-empty, bounded size, no control characters other than
// whitespace. The parser performs full grammar validation.
func ValidateNotation(input string) error {
	if strings.TrimSpace(input) == "" {
		return New(ErrCodeInvalidInput, "notation cannot be empty")
	}

	const maxNotationLength = 1 << 20
	if len(input) > maxNotationLength {
		return New(ErrCodeInvalidInput, "notation too long (max %d bytes)", maxNotationLength)
	}

	for _, r := range input {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "notation contains control characters")
		}
	}

	return nil
}
