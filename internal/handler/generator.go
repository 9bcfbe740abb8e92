package handler

import (
	"errors"
	"net/http"

	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/service"
)

// RunningMessage is the liveness probe payload.
const RunningMessage = "Password Generator API is running!"

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /generate-password requests.
//
// Malformed bodies are rejected with 422. Once the body decodes, every
// outcome is a 200 envelope and clients inspect its success field.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	req, verr, err := decodePasswordRequest(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return
		}
	}
	if verr != nil {
		writeJSON(w, http.StatusUnprocessableEntity, verr)
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		writeJSON(w, http.StatusOK, model.PasswordResponse{Error: err.Error(), Success: false})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRoot handles GET / requests.
func (h *GeneratorHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: RunningMessage})
}
