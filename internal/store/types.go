package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock is a single tracked ticker record, keyed by symbol.
type Stock struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Symbol      string             `bson:"symbol" json:"symbol"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Change      float64            `bson:"change" json:"change"`
	LastUpdated time.Time          `bson:"last_updated" json:"lastUpdated"`
}
