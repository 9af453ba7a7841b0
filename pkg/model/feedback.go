package model

import "go.mongodb.org/mongo-driver/bson"

// Feedback is a guest review of a stay. Never updated or deleted.
type Feedback struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	BookingID string    `json:"bookingId" bson:"bookingId" validate:"required,mongodb"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	Rating    int       `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" bson:"comment" validate:"required,min=2,max=2000"`
	Timestamp Timestamp `json:"timestamp" bson:"timestamp"`
	Extra     bson.M    `json:"-" bson:",inline"`
}

type feedbackFields Feedback

func (f Feedback) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(feedbackFields(f), f.Extra)
}

func (f *Feedback) UnmarshalJSON(data []byte) error {
	var fields feedbackFields
	extra, err := decodeWithExtra(data, &fields)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*f = Feedback(fields)
	return nil
}
