package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SecureEventHash binds event id, price and ticket type together so the
// client cannot tamper with the price it got served. The same hash is issued
// with the registration form and re-checked on submission.
func SecureEventHash(secret, eventID string, price int, ticketTypeID uint) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s%d%d", eventID, price, ticketTypeID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyEventHash compares in constant time.
func VerifyEventHash(secret, eventID string, price int, ticketTypeID uint, submitted string) bool {
	want := SecureEventHash(secret, eventID, price, ticketTypeID)
	return hmac.Equal([]byte(want), []byte(submitted))
}
