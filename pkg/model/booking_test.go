package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingUpdate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		checkIn  string
		adults   int
		hasChild bool
	}{
		{
			name:     "current names",
			body:     `{"checkIn":"2024-02-01","adults":2,"child":0}`,
			checkIn:  "2024-02-01",
			adults:   2,
			hasChild: true,
		},
		{
			name:    "legacy names",
			body:    `{"newCheckIn":"2024-02-05","newAdults":3}`,
			checkIn: "2024-02-05",
			adults:  3,
		},
		{
			name:    "current name wins over legacy",
			body:    `{"checkIn":"2024-02-01","newCheckIn":"2024-03-01","adults":1}`,
			checkIn: "2024-02-01",
			adults:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var update BookingUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &update))

			require.NotNil(t, update.CheckIn)
			assert.Equal(t, tt.checkIn, *update.CheckIn)
			require.NotNil(t, update.Adults)
			assert.Equal(t, tt.adults, *update.Adults)
			assert.Nil(t, update.CheckOut)
			assert.Equal(t, tt.hasChild, update.Child != nil)
		})
	}
}

func TestBookingUpdate_IsEmpty(t *testing.T) {
	var update BookingUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"unrelated":true}`), &update))
	assert.True(t, update.IsEmpty())
}

func TestBooking_ResolveRoomID(t *testing.T) {
	var booking Booking
	require.NoError(t, json.Unmarshal([]byte(`{"bookingId":"65a0c0ffee65a0c0ffee65a0","email":"a@x.com"}`), &booking))

	booking.ResolveRoomID()

	assert.Equal(t, "65a0c0ffee65a0c0ffee65a0", booking.RoomID)
	assert.Empty(t, booking.LegacyRoomID)

	explicit := Booking{RoomID: "canonical", LegacyRoomID: "legacy"}
	explicit.ResolveRoomID()
	assert.Equal(t, "canonical", explicit.RoomID)
}
