package model

import "time"

// CreatedAtLayout is the fixed rendering of issuance timestamps, both in API
// responses and in the persisted row: DD-MM-YYYY HH:MM:SS, 24-hour clock.
const CreatedAtLayout = "02-01-2006 15:04:05"

// Client is an issued service credential together with the service metadata
// registered against it. One Client exists per issued app key; the app key
// and secret are immutable once written, service metadata is filled in by a
// later registration call.
type Client struct {
	ID            int64
	ClientEmail   string
	AppKey        string
	AppSecret     string
	ServiceName   string
	ServiceDomain string
	ServiceURI    string
	Approved      bool
	CreatedAt     time.Time
}
