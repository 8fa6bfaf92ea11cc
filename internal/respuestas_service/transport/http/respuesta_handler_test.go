package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/app"
	"github.com/alertavecinal/respuestas-service/internal/respuestas_service/domain"
)

const testAlertaID = "123e4567-e89b-12d3-a456-426614174000"

// MockRespuestaService is a mock implementation of RespuestaService.
type MockRespuestaService struct {
	mock.Mock
}

func (m *MockRespuestaService) EnviarRespuesta(ctx context.Context, input app.EnviarRespuestaInput) (*domain.Respuesta, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Respuesta), args.Error(1)
}

func (m *MockRespuestaService) ListarRespuestas(ctx context.Context, alertaID string) ([]*domain.Respuesta, error) {
	args := m.Called(ctx, alertaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Respuesta), args.Error(1)
}

func setupHandlerTest(t *testing.T) (*MockRespuestaService, *chi.Mux) {
	t.Helper()
	mockService := new(MockRespuestaService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewRespuestaHandler(mockService, logger, NewValidator())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return mockService, router
}

func postRespuesta(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/respuestas", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// --- POST /api/respuestas ---

func TestEnviarRespuesta_HandlerSuccess(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	stored := &domain.Respuesta{
		ID:                "resp-1",
		AlertaID:          testAlertaID,
		RemitenteUID:      "uid-1",
		RemitenteNombre:   "Carla",
		DestinatarioUID:   "uid-2",
		DestinatarioPhone: "912345678",
		Mensaje:           "hola vecino",
	}
	mockService.On("EnviarRespuesta", mock.Anything, app.EnviarRespuestaInput{
		AlertaID:          testAlertaID,
		RemitenteUID:      "uid-1",
		Mensaje:           "  hola vecino  ",
		DestinatarioPhone: "+56 9 1234 5678",
	}).Return(stored, nil).Once()

	rr := postRespuesta(t, router, map[string]any{
		"alertaId":          testAlertaID,
		"remitenteUid":      "uid-1",
		"mensaje":           "  hola vecino  ",
		"destinatarioPhone": "+56 9 1234 5678",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	var resp enviarRespuestaResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "resp-1", resp.Respuesta.ID)
	assert.Equal(t, "hola vecino", resp.Respuesta.Mensaje)
	assert.Nil(t, resp.Respuesta.RespuestaCitadaID)

	ts, err := time.Parse(time.RFC3339, resp.Respuesta.Timestamp)
	require.NoError(t, err, "timestamp must be ISO-8601")
	assert.WithinDuration(t, time.Now(), ts, time.Minute)

	mockService.AssertExpectations(t)
}

func TestEnviarRespuesta_HandlerMissingFields(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	rr := postRespuesta(t, router, map[string]any{
		"remitenteUid": "uid-1",
		"mensaje":      "hola",
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Faltan campos obligatorios")
	assert.Contains(t, resp.Message, "alertaId")
	assert.Contains(t, resp.Message, "destinatarioPhone")

	mockService.AssertNotCalled(t, "EnviarRespuesta", mock.Anything, mock.Anything)
}

func TestEnviarRespuesta_HandlerInvalidJSON(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/respuestas", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "EnviarRespuesta", mock.Anything, mock.Anything)
}

func TestEnviarRespuesta_HandlerRemitenteNotFound(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	mockService.On("EnviarRespuesta", mock.Anything, mock.AnythingOfType("app.EnviarRespuestaInput")).
		Return(nil, domain.ErrRemitenteNotFound).Once()

	rr := postRespuesta(t, router, map[string]any{
		"alertaId":          testAlertaID,
		"remitenteUid":      "uid-desconocido",
		"mensaje":           "hola",
		"destinatarioPhone": "912345678",
	})

	require.Equal(t, http.StatusNotFound, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Remitente no encontrado", resp.Message)
}

func TestEnviarRespuesta_HandlerDestinatarioNotFound(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	mockService.On("EnviarRespuesta", mock.Anything, mock.AnythingOfType("app.EnviarRespuestaInput")).
		Return(nil, domain.ErrDestinatarioNotFound).Once()

	rr := postRespuesta(t, router, map[string]any{
		"alertaId":          testAlertaID,
		"remitenteUid":      "uid-1",
		"mensaje":           "hola",
		"destinatarioPhone": "900000000",
	})

	require.Equal(t, http.StatusNotFound, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Destinatario no encontrado", resp.Message)
}

func TestEnviarRespuesta_HandlerInternalError(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	mockService.On("EnviarRespuesta", mock.Anything, mock.AnythingOfType("app.EnviarRespuestaInput")).
		Return(nil, errors.New("firestore unavailable")).Once()

	rr := postRespuesta(t, router, map[string]any{
		"alertaId":          testAlertaID,
		"remitenteUid":      "uid-1",
		"mensaje":           "hola",
		"destinatarioPhone": "912345678",
	})

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "firestore unavailable", resp.Message)
}

// --- GET /api/respuestas/{alertaID} ---

func getRespuestas(t *testing.T, router http.Handler, alertaID, userID string) *httptest.ResponseRecorder {
	t.Helper()
	url := "/api/respuestas/" + alertaID
	if userID != "" {
		url += "?userId=" + userID
	}
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestListarRespuestas_HandlerSuccessWithEsMia(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	avatar := "https://cdn.example.com/a.png"
	citada := "resp-0"
	stored := []*domain.Respuesta{
		{ID: "r1", AlertaID: testAlertaID, RemitenteUID: "uid-yo", RemitenteNombre: "Carla", RemitenteAvatar: &avatar, Mensaje: "primero", Timestamp: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "r2", AlertaID: testAlertaID, RemitenteUID: "uid-otro", RemitenteNombre: "Diego", Mensaje: "segundo", RespuestaCitadaID: &citada, Timestamp: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)},
	}
	mockService.On("ListarRespuestas", mock.Anything, testAlertaID).Return(stored, nil).Once()

	rr := getRespuestas(t, router, testAlertaID, "uid-yo")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp listarRespuestasResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Respuestas, 2)

	first, second := resp.Respuestas[0], resp.Respuestas[1]
	assert.Equal(t, "r1", first.ID)
	assert.True(t, first.EsMia)
	assert.Equal(t, "Carla", first.RemitenteNombre)
	require.NotNil(t, first.RemitenteAvatar)
	assert.Equal(t, avatar, *first.RemitenteAvatar)
	assert.Equal(t, "2026-08-01T10:00:00Z", first.Timestamp)

	assert.Equal(t, "r2", second.ID)
	assert.False(t, second.EsMia)
	require.NotNil(t, second.RespuestaCitadaID)
	assert.Equal(t, "resp-0", *second.RespuestaCitadaID)
}

func TestListarRespuestas_HandlerEmptyList(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	mockService.On("ListarRespuestas", mock.Anything, testAlertaID).Return([]*domain.Respuesta{}, nil).Once()

	rr := getRespuestas(t, router, testAlertaID, "uid-yo")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"respuestas":[]`, "no replies is an empty array, not null")
}

func TestListarRespuestas_HandlerMissingUserID(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	rr := getRespuestas(t, router, testAlertaID, "")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alertaId y userId son requeridos", resp.Message)
	mockService.AssertNotCalled(t, "ListarRespuestas", mock.Anything, mock.Anything)
}

func TestListarRespuestas_HandlerInvalidAlertaIDLength(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	rr := getRespuestas(t, router, "demasiado-corto", "uid-yo")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alertaId inválido", resp.Message)
	mockService.AssertNotCalled(t, "ListarRespuestas", mock.Anything, mock.Anything)
}

func TestListarRespuestas_HandlerInternalError(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	mockService.On("ListarRespuestas", mock.Anything, testAlertaID).
		Return(nil, errors.New("firestore unavailable")).Once()

	rr := getRespuestas(t, router, testAlertaID, "uid-yo")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

// Pins the established wire behavior: a legitimately empty stored nombre is
// replaced by the default at the serialization boundary, same as a missing
// one. A zero timestamp likewise falls back to the current time.
func TestListarRespuestas_EmptyNombreFallsBackToDefault(t *testing.T) {
	mockService, router := setupHandlerTest(t)

	stored := []*domain.Respuesta{
		{ID: "r1", AlertaID: testAlertaID, RemitenteUID: "uid-otro", RemitenteNombre: "", Mensaje: "hola"},
	}
	mockService.On("ListarRespuestas", mock.Anything, testAlertaID).Return(stored, nil).Once()

	rr := getRespuestas(t, router, testAlertaID, "uid-yo")

	require.Equal(t, http.StatusOK, rr.Code)
	var resp listarRespuestasResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Respuestas, 1)
	assert.Equal(t, domain.DefaultNombre, resp.Respuestas[0].RemitenteNombre)

	ts, err := time.Parse(time.RFC3339, resp.Respuestas[0].Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}
