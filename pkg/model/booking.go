package model

import (
	"encoding/json"
	"time"
)

// Booking is a guest's reservation of one room. RoomID references rooms._id as a hex string.
type Booking struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	RoomID    string    `json:"roomId" bson:"roomId" validate:"required,mongodb"`
	CheckIn   string    `json:"checkIn" bson:"checkIn" validate:"required,stay_date"`
	CheckOut  string    `json:"checkOut" bson:"checkOut" validate:"required,stay_date"`
	Adults    int       `json:"adults" bson:"adults" validate:"min=0,max=10"`
	Child     int       `json:"child" bson:"child" validate:"min=0,max=10"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	// LegacyRoomID accepts the old request field "bookingId", which carried the room id.
	LegacyRoomID string `json:"bookingId,omitempty" bson:"-" validate:"-"`
}

// ResolveRoomID falls back to the legacy field when roomId is absent.
func (b *Booking) ResolveRoomID() {
	if b.RoomID == "" {
		b.RoomID = b.LegacyRoomID
	}
	b.LegacyRoomID = ""
}

// BookingUpdate carries the mutable stay details. Nil fields are left unchanged.
type BookingUpdate struct {
	CheckIn  *string `json:"checkIn,omitempty" validate:"omitempty,stay_date"`
	CheckOut *string `json:"checkOut,omitempty" validate:"omitempty,stay_date"`
	Adults   *int    `json:"adults,omitempty" validate:"omitempty,min=0,max=10"`
	Child    *int    `json:"child,omitempty" validate:"omitempty,min=0,max=10"`
}

// UnmarshalJSON also understands the older newCheckIn/newCheckOut/newAdults/newChild names.
// When both spellings are present the current name wins.
func (u *BookingUpdate) UnmarshalJSON(data []byte) error {
	var raw struct {
		CheckIn     *string `json:"checkIn"`
		CheckOut    *string `json:"checkOut"`
		Adults      *int    `json:"adults"`
		Child       *int    `json:"child"`
		NewCheckIn  *string `json:"newCheckIn"`
		NewCheckOut *string `json:"newCheckOut"`
		NewAdults   *int    `json:"newAdults"`
		NewChild    *int    `json:"newChild"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.CheckIn = firstNonNil(raw.CheckIn, raw.NewCheckIn)
	u.CheckOut = firstNonNil(raw.CheckOut, raw.NewCheckOut)
	u.Adults = firstNonNil(raw.Adults, raw.NewAdults)
	u.Child = firstNonNil(raw.Child, raw.NewChild)
	return nil
}

func (u *BookingUpdate) IsEmpty() bool {
	return u.CheckIn == nil && u.CheckOut == nil && u.Adults == nil && u.Child == nil
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

type InsertResult struct {
	InsertedID string `json:"insertedId"`
}
