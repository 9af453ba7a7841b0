package model

import "go.mongodb.org/mongo-driver/bson"

// Room is a bookable room. Availability is owned by the booking workflow.
// Listing fields beyond the ones below are passed through in Extra.
type Room struct {
	ID            string   `json:"_id,omitempty" bson:"_id,omitempty"`
	Title         string   `json:"title" bson:"title"`
	Description   string   `json:"description,omitempty" bson:"description,omitempty"`
	PricePerNight float64  `json:"pricePerNight" bson:"pricePerNight"`
	RoomSize      string   `json:"roomSize,omitempty" bson:"roomSize,omitempty"`
	Images        []string `json:"images,omitempty" bson:"images,omitempty"`
	SpecialOffer  string   `json:"specialOffer,omitempty" bson:"specialOffer,omitempty"`
	Availability  bool     `json:"availability" bson:"availability"`
	Extra         bson.M   `json:"-" bson:",inline"`
}

type roomFields Room

func (r Room) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(roomFields(r), r.Extra)
}

func (r *Room) UnmarshalJSON(data []byte) error {
	var fields roomFields
	extra, err := decodeWithExtra(data, &fields)
	if err != nil {
		return err
	}
	fields.Extra = extra
	*r = Room(fields)
	return nil
}
