package repository

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"campusmarket/pkg/errors"
)

// Cursors are opaque to callers: base64 of the last row's createdAt
// nanos and document ID, decoded back into a Firestore StartAfter.
func encodeCursor(createdAt time.Time, id string) string {
	raw := fmt.Sprintf("%d|%s", createdAt.UnixNano(), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", errors.BadRequest("Invalid pagination cursor", err)
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", errors.BadRequest("Invalid pagination cursor", nil)
	}

	nanos, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", errors.BadRequest("Invalid pagination cursor", err)
	}

	return time.Unix(0, nanos), parts[1], nil
}
