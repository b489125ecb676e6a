package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"apula/server/internal/mailer"
	"apula/server/internal/metrics"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const (
	msgMissingFields = "Missing email or code"
	msgBodyTooLarge  = "Request body too large"
	msgSendFailed    = "Failed to send verification email"
	msgSent          = "Verification email sent successfully"
)

var validate = validator.New()

// Presence is the only check; address and code shape are left to the caller.
type verificationRequest struct {
	Email string    `validate:"required"`
	Code  codeValue `validate:"required"`
}

// codeValue accepts the code as a JSON string, number or boolean and keeps
// its text. Null, false and numeric zero decode to empty, which counts as
// missing.
type codeValue string

func (c *codeValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch v := v.(type) {
	case nil:
		*c = ""
	case string:
		*c = codeValue(v)
	case json.Number:
		if f, err := v.Float64(); err == nil && f == 0 {
			*c = ""
			return nil
		}
		*c = codeValue(v.String())
	case bool:
		*c = ""
		if v {
			*c = "true"
		}
	default:
		return fmt.Errorf("unsupported code type %T", v)
	}
	return nil
}

// decodeVerificationRequest reads only the exact "email" and "code" keys;
// encoding/json would otherwise match them case-insensitively.
func decodeVerificationRequest(r io.Reader) (verificationRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&fields); err != nil {
		return verificationRequest{}, err
	}

	var req verificationRequest
	if raw, ok := fields["email"]; ok {
		if err := json.Unmarshal(raw, &req.Email); err != nil {
			return verificationRequest{}, fmt.Errorf("decode email: %w", err)
		}
	}
	if raw, ok := fields["code"]; ok {
		if err := json.Unmarshal(raw, &req.Code); err != nil {
			return verificationRequest{}, fmt.Errorf("decode code: %w", err)
		}
	}
	return req, nil
}

func (a *API) handleSendVerification(w http.ResponseWriter, r *http.Request) {
	req, err := decodeVerificationRequest(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.VerificationDispatches.WithLabelValues(metrics.OutcomeRejected).Inc()
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		a.reject(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		a.reject(w, r, err)
		return
	}

	msg, err := mailer.NewVerificationMessage(a.settings.Sender, req.Email, string(req.Code))
	if err != nil {
		a.dispatchFailed(w, r, req.Email, "", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), a.settings.SendTimeout)
	defer cancel()

	start := time.Now()
	err = a.transport.Send(ctx, msg)
	metrics.VerificationSendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		a.dispatchFailed(w, r, req.Email, msg.ID, err)
		return
	}

	metrics.VerificationDispatches.WithLabelValues(metrics.OutcomeSent).Inc()
	a.logger.Info("verification email sent",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("message_id", msg.ID),
		slog.String("to", req.Email),
	)
	writeMessage(w, http.StatusOK, msgSent)
}

func (a *API) reject(w http.ResponseWriter, r *http.Request, err error) {
	metrics.VerificationDispatches.WithLabelValues(metrics.OutcomeRejected).Inc()
	a.logger.Debug("verification request rejected",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("err", err),
	)
	writeError(w, http.StatusBadRequest, msgMissingFields)
}

// dispatchFailed logs the cause server side; callers only see a generic error.
func (a *API) dispatchFailed(w http.ResponseWriter, r *http.Request, to, messageID string, err error) {
	metrics.VerificationDispatches.WithLabelValues(metrics.OutcomeFailed).Inc()
	a.logger.Error("failed to send verification email",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("message_id", messageID),
		slog.String("to", to),
		slog.Any("err", err),
	)
	writeError(w, http.StatusInternalServerError, msgSendFailed)
}
