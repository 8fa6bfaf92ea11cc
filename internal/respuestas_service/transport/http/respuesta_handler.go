package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/app"
	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/domain"
)

const alertaIDLength = 36 // standard UUID string length

// RespuestaService is the application surface the handler depends on.
type RespuestaService interface {
	EnviarRespuesta(ctx context.Context, input app.EnviarRespuestaInput) (*domain.Respuesta, error)
	ListarRespuestas(ctx context.Context, alertaID string) ([]*domain.Respuesta, error)
}

// RespuestaHandler handles HTTP requests for the respuestas endpoints.
type RespuestaHandler struct {
	service  RespuestaService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRespuestaHandler creates a new RespuestaHandler.
func NewRespuestaHandler(service RespuestaService, logger *slog.Logger, validate *validator.Validate) *RespuestaHandler {
	return &RespuestaHandler{
		service:  service,
		logger:   logger,
		validate: validate,
	}
}

// NewValidator builds a validator that reports field names by their json
// tag, so validation messages speak the wire contract's language.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// RegisterRoutes sets up the routing for the respuestas endpoints.
func (h *RespuestaHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/respuestas", h.EnviarRespuesta)
	r.Get("/api/respuestas/{alertaID}", h.ListarRespuestas)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("Failed to write JSON response", "error", err)
		}
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Success: false, Message: message})
}

// mapDomainErrorToResponse converts service errors to an HTTP status and a
// caller-facing message.
func mapDomainErrorToResponse(err error) (int, string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, "Faltan campos obligatorios: " + strings.Join(validationErr.Fields, ", ")
	case errors.Is(err, domain.ErrRemitenteNotFound):
		return http.StatusNotFound, "Remitente no encontrado"
	case errors.Is(err, domain.ErrDestinatarioNotFound):
		return http.StatusNotFound, "Destinatario no encontrado"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// EnviarRespuesta handles POST /api/respuestas.
func (h *RespuestaHandler) EnviarRespuesta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reqDTO EnviarRespuestaRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}
	defer r.Body.Close()

	if err := h.validate.StructCtx(ctx, reqDTO); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			missing := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				missing = append(missing, fe.Field())
			}
			respondWithError(w, http.StatusBadRequest, "Faltan campos obligatorios: "+strings.Join(missing, ", "))
			return
		}
		respondWithError(w, http.StatusBadRequest, "Cuerpo de la solicitud inválido")
		return
	}

	respuesta, err := h.service.EnviarRespuesta(ctx, app.EnviarRespuestaInput{
		AlertaID:          reqDTO.AlertaID,
		RemitenteUID:      reqDTO.RemitenteUID,
		Mensaje:           reqDTO.Mensaje,
		DestinatarioPhone: reqDTO.DestinatarioPhone,
		RespuestaCitadaID: reqDTO.RespuestaCitadaID,
	})
	if err != nil {
		code, message := mapDomainErrorToResponse(err)
		if code == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "EnviarRespuesta failed", "error", err, "alerta_id", reqDTO.AlertaID)
		}
		respondWithError(w, code, message)
		return
	}

	respondWithJSON(w, http.StatusOK, enviarRespuestaResponse{
		Success:   true,
		Respuesta: newRespuestaResponseDTO(respuesta, time.Now()),
	})
}

// ListarRespuestas handles GET /api/respuestas/{alertaID}?userId=.
func (h *RespuestaHandler) ListarRespuestas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	alertaID := chi.URLParam(r, "alertaID")
	userID := r.URL.Query().Get("userId")

	if alertaID == "" || userID == "" {
		respondWithError(w, http.StatusBadRequest, "alertaId y userId son requeridos")
		return
	}
	if len(alertaID) != alertaIDLength {
		respondWithError(w, http.StatusBadRequest, "alertaId inválido")
		return
	}

	respuestas, err := h.service.ListarRespuestas(ctx, alertaID)
	if err != nil {
		code, message := mapDomainErrorToResponse(err)
		if code == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "ListarRespuestas failed", "error", err, "alerta_id", alertaID)
		}
		respondWithError(w, code, message)
		return
	}

	now := time.Now()
	items := make([]RespuestaItemDTO, 0, len(respuestas))
	for _, respuesta := range respuestas {
		items = append(items, newRespuestaItemDTO(respuesta, userID, now))
	}

	respondWithJSON(w, http.StatusOK, listarRespuestasResponse{
		Success:    true,
		Respuestas: items,
	})
}
