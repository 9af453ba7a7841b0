package validators

import "go.mongodb.org/mongo-driver/bson"

var FeedbackValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"bookingId",
			"email",
			"rating",
			"comment",
			"timestamp",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"bookingId": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},
			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},
			"rating": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  5,
			},
			"comment": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2000,
			},
			"timestamp": bson.M{
				"bsonType": []string{"date", "string"},
			},
		},
	},
}
