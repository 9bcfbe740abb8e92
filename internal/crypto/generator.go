package crypto

import (
	"fmt"
)

const (
	letterChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// MaxLength is the largest password the generator will allocate.
	MaxLength = 1 << 26
)

// Reason identifies why a password could not be generated.
type Reason string

const (
	ReasonInvalidLength      Reason = "invalid_length"
	ReasonLengthTooLarge     Reason = "length_too_large"
	ReasonEntropyUnavailable Reason = "entropy_unavailable"
)

// GenerationError is returned by Generate for every failure it reports.
type GenerationError struct {
	Reason  Reason
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches any *GenerationError with the same Reason, so callers can use
// errors.Is(err, ErrInvalidLength).
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	return ok && t.Reason == e.Reason
}

var (
	ErrInvalidLength      = &GenerationError{Reason: ReasonInvalidLength, Message: "password length must not be negative"}
	ErrLengthTooLarge     = &GenerationError{Reason: ReasonLengthTooLarge, Message: "password length is too large"}
	ErrEntropyUnavailable = &GenerationError{Reason: ReasonEntropyUnavailable, Message: "random source unavailable"}
)

// Generator builds passwords by drawing characters uniformly from a pool.
type Generator struct {
	rnd RandSource
}

// NewGenerator creates a Generator backed by rnd. A nil rnd falls back to CryptoSource.
func NewGenerator(rnd RandSource) *Generator {
	if rnd == nil {
		rnd = CryptoSource{}
	}
	return &Generator{rnd: rnd}
}

// Pool returns the candidate characters for the given flags: letters, then
// digits, then special characters.
func Pool(includeNumbers, includeSpecialChars bool) string {
	pool := letterChars
	if includeNumbers {
		pool += numberChars
	}
	if includeSpecialChars {
		pool += specialChars
	}
	return pool
}

// Generate returns a password of exactly length characters. A length of zero
// yields the empty string; a negative length fails with ErrInvalidLength and
// a length above MaxLength with ErrLengthTooLarge.
func (g *Generator) Generate(length int, includeNumbers, includeSpecialChars bool) (string, error) {
	if length < 0 {
		return "", &GenerationError{
			Reason:  ReasonInvalidLength,
			Message: fmt.Sprintf("password length must not be negative, got %d", length),
		}
	}

	if length > MaxLength {
		return "", &GenerationError{
			Reason:  ReasonLengthTooLarge,
			Message: fmt.Sprintf("password length must be at most %d, got %d", MaxLength, length),
		}
	}

	pool := Pool(includeNumbers, includeSpecialChars)
	result := make([]byte, length)

	for i := range result {
		n, err := g.rnd.IntN(len(pool))
		if err != nil {
			return "", &GenerationError{
				Reason:  ReasonEntropyUnavailable,
				Message: ErrEntropyUnavailable.Message,
				Err:     err,
			}
		}
		result[i] = pool[n]
	}

	return string(result), nil
}
