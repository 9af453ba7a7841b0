package validator

import (
	"errors"
	"testing"

	"tranquilstay/pkg/logger"
	"tranquilstay/pkg/model"
	"tranquilstay/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() *model.Booking {
	return &model.Booking{
		Email:    "a@x.com",
		RoomID:   "65a1f0c2e4b0a1b2c3d4e5f6",
		CheckIn:  "2024-01-01",
		CheckOut: "2024-01-03",
		Adults:   2,
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name    string
		mutate  func(b *model.Booking)
		wantErr string
	}{
		{name: "valid", mutate: func(b *model.Booking) {}},
		{name: "missing email", mutate: func(b *model.Booking) { b.Email = "" }, wantErr: "email"},
		{name: "room id not an object id", mutate: func(b *model.Booking) { b.RoomID = "R1" }, wantErr: "roomId"},
		{name: "bad date", mutate: func(b *model.Booking) { b.CheckIn = "01/01/2024" }, wantErr: "checkIn"},
		{name: "no occupancy counts", mutate: func(b *model.Booking) { b.Adults, b.Child = 0, 0 }},
		{name: "too many adults", mutate: func(b *model.Booking) { b.Adults = 11 }, wantErr: "adults"},
		{name: "too many children", mutate: func(b *model.Booking) { b.Child = 11 }, wantErr: "child"},
		{name: "check-out equals check-in", mutate: func(b *model.Booking) { b.CheckOut = b.CheckIn }, wantErr: "checkOut"},
		{name: "check-out before check-in", mutate: func(b *model.Booking) { b.CheckOut = "2023-12-31" }, wantErr: "checkOut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var errs validation.ValidationErrors
			require.True(t, errors.As(err, &errs), "got %v", err)
			assert.Equal(t, tt.wantErr, errs[0].Field)
		})
	}
}

func TestValidateUpdate_MergesWithCurrentStay(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	current := validBooking()

	assert.NoError(t, v.ValidateUpdate(&model.BookingUpdate{CheckOut: ptr("2024-01-05")}, current))
	assert.NoError(t, v.ValidateUpdate(&model.BookingUpdate{Adults: ptr(3)}, current))

	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{CheckIn: ptr("2024-01-04")}, current))
	assert.NoError(t, v.ValidateUpdate(&model.BookingUpdate{Adults: ptr(0)}, current))
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{Adults: ptr(11)}, current))
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{CheckIn: ptr("tomorrow")}, current))
}
