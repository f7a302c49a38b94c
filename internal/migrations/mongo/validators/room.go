package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"bookings",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 120,
			},

			"bookings": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "object",
					"required": []string{
						"room_id",
						"start_time",
						"end_time",
						"created_at",
					},
					"properties": bson.M{
						"room_id": bson.M{
							"bsonType": "string",
						},
						"start_time": bson.M{
							"bsonType": "date",
						},
						"end_time": bson.M{
							"bsonType": "date",
						},
						"created_at": bson.M{
							"bsonType": "date",
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
