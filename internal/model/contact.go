package model

import "time"

// Contact represents a single logged QSO (radio contact).
// Date and Time are kept in their wire formats ("YYYY-MM-DD", "HH:MM" or
// "HH:MM:SS") because the import/export schema is defined over those strings.
type Contact struct {
	ID           int64    `json:"id,omitempty"`
	BaseCallsign string   `json:"baseCallsign"`
	Prefix       *string  `json:"prefix"`
	Suffix       *string  `json:"suffix"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Frequency    float64  `json:"frequency"`
	Mode         string   `json:"mode"`
	Power        *float64 `json:"power"`
	RSTSent      *string  `json:"rstSent"`
	RSTReceived  *string  `json:"rstReceived"`
	QSLSent      bool     `json:"qslSent"`
	QSLReceived  bool     `json:"qslReceived"`
	Remarks      string   `json:"remarks"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// CreateContactRequest is the payload for logging a new contact.
// Date/time formats are checked in the service layer so their error
// messages match the import validator's wording.
type CreateContactRequest struct {
	BaseCallsign string   `json:"baseCallsign" binding:"required,min=1,max=20"`
	Prefix       *string  `json:"prefix" binding:"omitempty,max=10"`
	Suffix       *string  `json:"suffix" binding:"omitempty,max=10"`
	Date         string   `json:"date" binding:"required"`
	Time         string   `json:"time" binding:"required"`
	Frequency    float64  `json:"frequency" binding:"required,gt=0"`
	Mode         string   `json:"mode" binding:"required,min=1,max=20"`
	Power        *float64 `json:"power" binding:"omitempty,gt=0"`
	RSTSent      *string  `json:"rstSent" binding:"omitempty,max=10"`
	RSTReceived  *string  `json:"rstReceived" binding:"omitempty,max=10"`
	QSLSent      bool     `json:"qslSent"`
	QSLReceived  bool     `json:"qslReceived"`
	Remarks      string   `json:"remarks" binding:"max=2000"`
}

// UpdateContactRequest is the payload for editing an existing contact.
// Pointer fields distinguish "not provided" from explicit zero values.
type UpdateContactRequest struct {
	BaseCallsign *string  `json:"baseCallsign" binding:"omitempty,min=1,max=20"`
	Prefix       *string  `json:"prefix" binding:"omitempty,max=10"`
	Suffix       *string  `json:"suffix" binding:"omitempty,max=10"`
	Date         *string  `json:"date" binding:"omitempty"`
	Time         *string  `json:"time" binding:"omitempty"`
	Frequency    *float64 `json:"frequency" binding:"omitempty,gt=0"`
	Mode         *string  `json:"mode" binding:"omitempty,min=1,max=20"`
	Power        *float64 `json:"power" binding:"omitempty,gt=0"`
	RSTSent      *string  `json:"rstSent" binding:"omitempty,max=10"`
	RSTReceived  *string  `json:"rstReceived" binding:"omitempty,max=10"`
	QSLSent      *bool    `json:"qslSent" binding:"omitempty"`
	QSLReceived  *bool    `json:"qslReceived" binding:"omitempty"`
	Remarks      *string  `json:"remarks" binding:"omitempty,max=2000"`
}
