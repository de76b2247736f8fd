package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"venue_id",
			"date",
			"time_slot",
			"duration_min",
			"payment_method",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"venue_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"customer_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			// Records imported from the old system carry string dates.
			// Reporting normalizes them in memory, so both shapes stay valid.
			"date": bson.M{
				"bsonType": []string{"date", "string"},
			},

			"time_slot": bson.M{
				"bsonType": "string",
				"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},

			"duration_min": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  15,
				"maximum":  480,
			},

			"amount": bson.M{
				"bsonType": []string{"int", "long", "double"},
				"minimum":  0,
			},

			"payment_method": bson.M{
				"bsonType": "string",
				"enum": []string{
					"cash",
					"card",
					"upi",
					"netbanking",
					"wallet",
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"completed",
					"cancelled",
				},
			},

			"no_show": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
