package grpc

import (
	"context"
	"log/slog"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"salonbook/backend/internal/domain"
)

// ErrorDomain is set on every ErrorInfo detail returned by this service.
const ErrorDomain = "salonbook"

func codeFor(reason domain.Reason) codes.Code {
	switch reason.Class() {
	case domain.ClassNotFound:
		return codes.NotFound
	case domain.ClassConflict:
		return codes.FailedPrecondition
	default:
		return codes.InvalidArgument
	}
}

func rejectionStatus(rej *domain.Rejection) error {
	st := status.New(codeFor(rej.Reason), rej.Message)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(rej.Reason),
		Domain: ErrorDomain,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func invalidArgument(msg string) error {
	return rejectionStatus(domain.Reject(domain.ReasonInvalidArgument, msg))
}

// toStatus maps a service error to a gRPC status, logging it at the level its
// class deserves. attrs are appended to the log record.
func toStatus(ctx context.Context, log *slog.Logger, op string, err error, attrs ...any) error {
	rej, ok := domain.AsRejection(err)
	if !ok {
		log.ErrorContext(ctx, op+" failed", append([]any{slog.Any("err", err)}, attrs...)...)
		return status.Error(codes.Internal, "internal error")
	}
	attrs = append([]any{slog.String("reason", string(rej.Reason))}, attrs...)
	if rej.Reason.Class() == domain.ClassValidation {
		log.WarnContext(ctx, "invalid request", append(attrs, slog.String("err", rej.Message))...)
	} else {
		log.InfoContext(ctx, op+" rejected", attrs...)
	}
	return rejectionStatus(rej)
}

// ReasonOf returns the rejection reason carried in err's ErrorInfo detail.
func ReasonOf(err error) (domain.Reason, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return "", false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return domain.Reason(info.GetReason()), true
		}
	}
	return "", false
}
