package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"email"},
		"additionalProperties": true,

		"properties": bson.M{
			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},
			"name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},
			"photoURL": bson.M{
				"bsonType": "string",
			},
			"lastLoginAt": bson.M{
				"bsonType": "string",
			},
		},
	},
}
