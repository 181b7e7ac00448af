// Package notify holds the capability interfaces the order lifecycle uses to
// reach users. The core never knows whether a user is connected or how a
// message travels; implementations own transport and persistence.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notifier delivers a message to a user. Emission is best-effort: a failure is
// logged by the caller and never fails the operation that triggered it.
type Notifier interface {
	Emit(ctx context.Context, userID, title, message string, orderID uuid.UUID, at time.Time) error
}

// OtpSender delivers a delivery OTP to a customer out of band (email or SMS).
// Purely informational and best-effort.
type OtpSender interface {
	SendOtp(ctx context.Context, userID, otpCode string) error
}
