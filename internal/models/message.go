// Package models provides the data structures shared by the extraction pipeline.
package models

import "time"

// RawMessage is one SMS as delivered by the message source. It is never
// mutated: the id is the device message-store row id and is assumed stable
// and unique per inbox.
type RawMessage struct {
	ID            string `csv:"Id" yaml:"id"`
	SenderAddress string `csv:"Sender" yaml:"sender"`
	Body          string `csv:"Body" yaml:"body"`
	Timestamp     int64  `csv:"Timestamp" yaml:"timestamp"` // epoch millis
}

// Time returns the message timestamp as a time.Time in UTC.
func (m RawMessage) Time() time.Time {
	return time.UnixMilli(m.Timestamp).UTC()
}
