package models

import "time"

// IdempotencyKey stores the response produced by the first execution of a
// request carrying a client-supplied Idempotency-Key. Unique per
// (key, userId, endpoint).
type IdempotencyKey struct {
	Key            string    `bson:"key" json:"key"`
	UserID         string    `bson:"userId" json:"userId"` // empty for guests
	Endpoint       string    `bson:"endpoint" json:"endpoint"`
	ResponseStatus int       `bson:"responseStatus" json:"responseStatus"`
	ResponseBody   []byte    `bson:"responseBody" json:"-"` // JSON encoded
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
