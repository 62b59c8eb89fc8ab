package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"salonbook/backend/internal/domain"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFor(reason domain.Reason) int {
	switch reason.Class() {
	case domain.ClassNotFound:
		return http.StatusNotFound
	case domain.ClassConflict:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRejection(w http.ResponseWriter, rej *domain.Rejection) {
	writeJSON(w, statusFor(rej.Reason), errorBody{Error: rej.Message, Code: string(rej.Reason)})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeRejection(w, domain.Reject(domain.ReasonInvalidArgument, msg))
}

// writeError renders a service error. Infrastructure failures are logged and
// answered with a generic 500.
func (a *api) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := a.log.With(
		slog.String("route", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	rej, ok := domain.AsRejection(err)
	if !ok {
		log.ErrorContext(r.Context(), "request failed", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: "INTERNAL"})
		return
	}
	if rej.Reason.Class() == domain.ClassValidation {
		log.WarnContext(r.Context(), "invalid request", slog.String("reason", string(rej.Reason)), slog.String("err", rej.Message))
	} else {
		log.InfoContext(r.Context(), "request rejected", slog.String("reason", string(rej.Reason)))
	}
	writeRejection(w, rej)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "uuid":
		return fe.Field() + " must be a UUID"
	case "email":
		return fe.Field() + " is not a valid address"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "max":
		return fe.Field() + " is too long"
	default:
		return fe.Field() + " is invalid"
	}
}
