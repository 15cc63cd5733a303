package booking

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// idempotencyTimeLayout fixes the serialization of the scheduled start:
// UTC ISO-8601 with millisecond precision. Changing this layout changes
// every derived key, so it is part of the wire contract.
const idempotencyTimeLayout = "2006-01-02T15:04:05.000Z"

// DeriveIdempotencyKey maps the identifying fields of a booking request to a
// stable fingerprint: a hex-encoded sha256 over the five inputs joined by
// "-" in this exact order. A client that retries the same logical request
// reproduces the same key and gets the original booking back instead of a
// duplicate reservation.
func DeriveIdempotencyKey(customerID, professionalID, serviceID, slotID uuid.UUID, startAt time.Time) string {
	payload := fmt.Sprintf("%s-%s-%s-%s-%s",
		customerID, professionalID, serviceID, slotID,
		startAt.UTC().Format(idempotencyTimeLayout),
	)
	digest := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(digest[:])
}
