package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"roomId",
			"checkIn",
			"checkOut",
			"createdAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"roomId": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"checkIn": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"checkOut": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"adults": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  10,
			},

			"child": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
				"maximum":  10,
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
