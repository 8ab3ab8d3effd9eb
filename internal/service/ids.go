package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}

	return oid, nil
}

// normalizeFilter copies a caller filter, converting string values under idKeys to ObjectIDs.
func normalizeFilter(filter map[string]interface{}, idKeys ...string) (bson.M, error) {
	normalized := make(bson.M, len(filter))
	for k, v := range filter {
		normalized[k] = v
	}

	for _, key := range idKeys {
		s, ok := normalized[key].(string)
		if !ok {
			continue
		}
		oid, err := parseID(s)
		if err != nil {
			return nil, err
		}
		normalized[key] = oid
	}

	return normalized, nil
}

// withoutFields copies fields minus the listed keys.
func withoutFields(fields map[string]interface{}, keys ...string) bson.M {
	stripped := make(bson.M, len(fields))
	for k, v := range fields {
		stripped[k] = v
	}

	for _, key := range keys {
		delete(stripped, key)
	}

	return stripped
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func hexIDs(ids []primitive.ObjectID) []string {
	hexes := make([]string, 0, len(ids))
	for _, id := range ids {
		hexes = append(hexes, id.Hex())
	}

	return hexes
}
