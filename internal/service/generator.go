package service

import (
	"errors"
	"log/slog"

	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/metrics"
	"github.com/passgen/passgen-go/internal/model"
)

// ErrIncompleteRequest is returned when a request reaches the service without all of its fields.
var ErrIncompleteRequest = errors.New("length, include_numbers and include_special_chars are required")

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	generator *crypto.Generator
	metrics   *metrics.Metrics
}

// NewGeneratorService creates a new GeneratorService. m may be nil.
func NewGeneratorService(gen *crypto.Generator, m *metrics.Metrics) *GeneratorService {
	return &GeneratorService{generator: gen, metrics: m}
}

// Generate produces a password for a decoded request.
func (s *GeneratorService) Generate(req model.PasswordRequest) (model.PasswordResponse, error) {
	if req.Length == nil || req.IncludeNumbers == nil || req.IncludeSpecialChars == nil {
		return model.PasswordResponse{}, ErrIncompleteRequest
	}

	password, err := s.generator.Generate(*req.Length, *req.IncludeNumbers, *req.IncludeSpecialChars)
	if err != nil {
		s.metrics.RecordGeneration(failureStatus(err), 0)
		slog.Warn("password generation failed", "length", *req.Length, "error", err)
		return model.PasswordResponse{}, err
	}

	s.metrics.RecordGeneration(metrics.StatusSuccess, len(password))

	return model.PasswordResponse{
		Password: password,
		Success:  true,
	}, nil
}

func failureStatus(err error) string {
	var genErr *crypto.GenerationError
	if errors.As(err, &genErr) {
		return string(genErr.Reason)
	}
	return "error"
}
