package crypto

import (
	"errors"
	"math"
	"strings"
	"testing"
)

type failingSource struct{ err error }

func (f failingSource) IntN(int) (int, error) { return 0, f.err }

func TestPool(t *testing.T) {
	tests := []struct {
		name     string
		numbers  bool
		specials bool
		want     string
	}{
		{name: "letters only", want: letterChars},
		{name: "letters and digits", numbers: true, want: letterChars + numberChars},
		{name: "letters and specials", specials: true, want: letterChars + specialChars},
		{name: "all", numbers: true, specials: true, want: letterChars + numberChars + specialChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pool(tt.numbers, tt.specials); got != tt.want {
				t.Errorf("Pool() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPoolSizes(t *testing.T) {
	if len(letterChars) != 52 {
		t.Errorf("letters = %d, want 52", len(letterChars))
	}
	if len(numberChars) != 10 {
		t.Errorf("digits = %d, want 10", len(numberChars))
	}
	if len(specialChars) != 26 {
		t.Errorf("specials = %d, want 26", len(specialChars))
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		numbers  bool
		specials bool
		wantErr  error
	}{
		{name: "letters only", length: 16},
		{name: "letters and digits", length: 12, numbers: true},
		{name: "letters and specials", length: 24, specials: true},
		{name: "all character types", length: 32, numbers: true, specials: true},
		{name: "single character", length: 1, numbers: true},
		{name: "large length", length: 10000, numbers: true, specials: true},
		{name: "zero length", length: 0},
		{name: "negative length", length: -1, wantErr: ErrInvalidLength},
		{name: "very negative length", length: -500, numbers: true, wantErr: ErrInvalidLength},
		{name: "just above maximum", length: MaxLength + 1, wantErr: ErrLengthTooLarge},
		{name: "unallocatable length", length: math.MaxInt, numbers: true, wantErr: ErrLengthTooLarge},
	}

	gen := NewGenerator(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := gen.Generate(tt.length, tt.numbers, tt.specials)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.length {
				t.Errorf("Generate() length = %d, want %d", len(result), tt.length)
			}

			pool := Pool(tt.numbers, tt.specials)
			for _, ch := range result {
				if !strings.ContainsRune(pool, ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), pool)
				}
			}
		})
	}
}

func TestGenerateLettersOnlyExcludesDigitsAndSpecials(t *testing.T) {
	gen := NewGenerator(NewMathSource(7))

	// Run multiple times; membership must hold on every draw.
	for i := 0; i < 50; i++ {
		password, err := gen.Generate(64, false, false)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if strings.ContainsAny(password, numberChars) {
			t.Errorf("password %q contains a digit", password)
		}
		if strings.ContainsAny(password, specialChars) {
			t.Errorf("password %q contains a special character", password)
		}
	}
}

func TestGenerateSeededSourceIsDeterministic(t *testing.T) {
	a, err := NewGenerator(NewMathSource(42)).Generate(20, true, true)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	b, err := NewGenerator(NewMathSource(42)).Generate(20, true, true)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("same seed produced %q and %q", a, b)
	}

	c, err := NewGenerator(NewMathSource(43)).Generate(20, true, true)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if a == c {
		t.Errorf("different seeds produced the same password %q", a)
	}
}

func TestGenerateUsesWholePool(t *testing.T) {
	gen := NewGenerator(NewMathSource(1))
	pool := Pool(true, true)

	password, err := gen.Generate(20000, true, true)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, ch := range pool {
		if !strings.ContainsRune(password, ch) {
			t.Errorf("character %q never drawn in 20000 samples", string(ch))
		}
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	gen := NewGenerator(nil)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := gen.Generate(16, true, true)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

func TestGenerateSourceFailure(t *testing.T) {
	cause := errors.New("entropy pool drained")
	gen := NewGenerator(failingSource{err: cause})

	_, err := gen.Generate(8, false, false)
	if !errors.Is(err, ErrEntropyUnavailable) {
		t.Fatalf("Generate() error = %v, want ErrEntropyUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Generate() error should wrap the source error")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Reason != ReasonEntropyUnavailable {
		t.Errorf("Generate() error reason = %v, want %v", genErr, ReasonEntropyUnavailable)
	}
}

func TestGenerateZeroLengthSkipsSource(t *testing.T) {
	gen := NewGenerator(failingSource{err: errors.New("unused")})

	password, err := gen.Generate(0, true, true)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if password != "" {
		t.Errorf("Generate() = %q, want empty string", password)
	}
}

func TestGenerationErrorMessage(t *testing.T) {
	_, err := NewGenerator(nil).Generate(-3, false, false)
	if err == nil {
		t.Fatal("expected error for negative length")
	}
	if want := "password length must not be negative, got -3"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
