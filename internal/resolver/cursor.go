package resolver

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// EncodeCursor encodes a zero-based offset as an opaque cursor.
func EncodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// DecodeCursor decodes a cursor produced by EncodeCursor.
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor %q: %w", cursor, err)
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor %q", cursor)
	}
	return offset, nil
}
