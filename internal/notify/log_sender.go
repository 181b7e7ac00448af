package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// logOtpSender writes OTPs to the log instead of a mail provider. Stands in
// for the external email/SMS collaborator in development and tests.
type logOtpSender struct {
	logger zerolog.Logger
}

// NewLogOtpSender creates an OtpSender that only logs.
func NewLogOtpSender(logger zerolog.Logger) OtpSender {
	return &logOtpSender{
		logger: logger.With().Str("component", "log-otp-sender").Logger(),
	}
}

// SendOtp logs the OTP dispatch.
func (s *logOtpSender) SendOtp(ctx context.Context, userID, otpCode string) error {
	s.logger.Info().
		Str("user_id", userID).
		Str("otp", otpCode).
		Msg("delivery OTP dispatched")
	return nil
}

// logNotifier logs emissions without persisting them. Useful when the inbox
// store is unavailable or disabled.
type logNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a Notifier that only logs.
func NewLogNotifier(logger zerolog.Logger) Notifier {
	return &logNotifier{
		logger: logger.With().Str("component", "log-notifier").Logger(),
	}
}

// Emit logs the notification.
func (n *logNotifier) Emit(ctx context.Context, userID, title, message string, orderID uuid.UUID, at time.Time) error {
	n.logger.Info().
		Str("user_id", userID).
		Str("order_id", orderID.String()).
		Str("title", title).
		Str("message", message).
		Msg("notification emitted")
	return nil
}
