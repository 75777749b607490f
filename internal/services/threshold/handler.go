// Package threshold implements the plant threshold update endpoint: it
// validates the request, overwrites both watering thresholds of the plant
// with a single store update and maps the result to an HTTP-shaped response.
package threshold

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/LeonardoBeccarini/plantcare/internal/model/entities"
	"github.com/LeonardoBeccarini/plantcare/internal/model/messages"
)

// Response messages.
const (
	MsgMissingBody      = "Missing request body"
	MsgMalformedBody    = "Malformed request body"
	MsgInvalidParams    = "Invalid request parameters"
	MsgUpdated          = "Threshold data updated"
	MsgUpdateFailed     = "Error updating threshold data"
	msgStoreUnavailable = "internal store error"
)

// Store is the key-value store collaborator.
type Store interface {
	UpdateThresholds(ctx context.Context, table string, rec entities.ThresholdRecord) (map[string]any, error)
}

// Request is one invocation record.
type Request struct {
	Body            string
	IsBase64Encoded bool
	RequestID       string // for logs only
}

// Response is the HTTP-shaped result of an invocation. Body is JSON.
type Response struct {
	StatusCode int
	Body       string
	Outcome    Outcome
}

// Outcome is the terminal state of an invocation.
type Outcome int

const (
	Success Outcome = iota
	RejectedMissingBody
	RejectedMalformedBody
	RejectedMissingKey
	StoreFailure
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case RejectedMissingBody:
		return "rejected_missing_body"
	case RejectedMalformedBody:
		return "rejected_malformed_body"
	case RejectedMissingKey:
		return "rejected_missing_key"
	case StoreFailure:
		return "store_failure"
	default:
		return "unknown"
	}
}

type Config struct {
	TableName string

	// HideStoreErrors replaces the store error text in 500 responses with a
	// generic one. The detailed error is logged either way.
	HideStoreErrors bool

	Logger  *slog.Logger
	Metrics *Metrics
}

type Handler struct {
	cfg   Config
	store Store
}

func NewHandler(cfg Config, store Store) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handler{cfg: cfg, store: store}
}

type responseBody struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handle runs one invocation. Every outcome, including store failures, is
// turned into a Response; at most one store update is issued.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	log := h.cfg.Logger.With("request_id", req.RequestID)

	body := []byte(req.Body)
	if req.IsBase64Encoded && len(body) > 0 {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return h.reject(log, RejectedMalformedBody, http.StatusBadRequest, MsgMalformedBody, err)
		}
		body = decoded
	}

	in, err := messages.ParseUpdateThresholdRequest(body)
	switch {
	case errors.Is(err, messages.ErrMissingBody):
		return h.reject(log, RejectedMissingBody, http.StatusBadRequest, MsgMissingBody, err)
	case errors.Is(err, messages.ErrMalformedBody):
		return h.reject(log, RejectedMalformedBody, http.StatusBadRequest, MsgMalformedBody, err)
	case err != nil:
		return h.reject(log, RejectedMissingKey, http.StatusBadRequest, MsgInvalidParams, err)
	}

	log = log.With("plant_id", in.PlantID)
	rec := entities.ThresholdRecord{
		PlantID:          in.PlantID,
		MinWaterLevel:    in.MinWaterLevel,
		MinMoistureLevel: in.MinMoistureLevel,
	}

	start := time.Now()
	data, err := h.store.UpdateThresholds(ctx, h.cfg.TableName, rec)
	h.cfg.Metrics.observeStore(time.Since(start).Seconds())
	if err != nil {
		log.Error("threshold update failed", "table", h.cfg.TableName, "error", err)
		errText := err.Error()
		if h.cfg.HideStoreErrors {
			errText = msgStoreUnavailable
		}
		return h.respond(StoreFailure, http.StatusInternalServerError, responseBody{Message: MsgUpdateFailed, Error: errText})
	}

	log.Info("threshold updated", "min_water_level", rec.MinWaterLevel, "min_moisture_level", rec.MinMoistureLevel)
	return h.respond(Success, http.StatusOK, responseBody{Message: MsgUpdated, Data: data})
}

// rejectUnreadable reports a body that could not be read off the transport.
func (h *Handler) rejectUnreadable(requestID string, err error) Response {
	log := h.cfg.Logger.With("request_id", requestID)
	return h.reject(log, RejectedMalformedBody, http.StatusBadRequest, MsgMalformedBody, err)
}

func (h *Handler) reject(log *slog.Logger, o Outcome, status int, msg string, err error) Response {
	log.Warn("threshold request rejected", "outcome", o.String(), "error", err)
	return h.respond(o, status, responseBody{Message: msg})
}

func (h *Handler) respond(o Outcome, status int, rb responseBody) Response {
	h.cfg.Metrics.observeOutcome(o)
	b, err := json.Marshal(rb)
	if err != nil {
		// store data that does not encode as JSON; keep the status, drop the data
		h.cfg.Logger.Error("encode response", "error", err)
		b, _ = json.Marshal(responseBody{Message: rb.Message, Error: rb.Error})
	}
	return Response{StatusCode: status, Body: string(b), Outcome: o}
}
