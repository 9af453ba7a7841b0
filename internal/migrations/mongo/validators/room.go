package validators

import "go.mongodb.org/mongo-driver/bson"

// RoomValidator only pins what the booking workflow relies on. Listing fields are managed elsewhere.
var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"availability"},
		"additionalProperties": true,

		"properties": bson.M{
			"availability": bson.M{
				"bsonType": "bool",
			},
			"pricePerNight": bson.M{
				"bsonType": []string{"int", "long", "double", "decimal"},
				"minimum":  0,
			},
			"images": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},
		},
	},
}
