package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no record exists for a symbol.
var ErrNotFound = errors.New("stock not found")

// StockStore wraps the Mongo collection holding stock records.
type StockStore struct {
	coll *mongo.Collection
}

// Connect establishes a Mongo client connection and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// New creates a StockStore backed by the given database and collection.
func New(client *mongo.Client, database, collection string) *StockStore {
	return &StockStore{coll: client.Database(database).Collection(collection)}
}

// EnsureIndexes creates the unique index on symbol that the store relies on.
func (s *StockStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "symbol", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create symbol index: %w", err)
	}
	return nil
}

// List returns all stock records in insertion order.
func (s *StockStore) List(ctx context.Context) ([]Stock, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	defer cursor.Close(ctx)

	stocks := []Stock{}
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, fmt.Errorf("failed to decode stocks: %w", err)
	}
	return stocks, nil
}

// FindBySymbol returns the record for symbol, or ErrNotFound.
// Callers normalize the symbol before lookup.
func (s *StockStore) FindBySymbol(ctx context.Context, symbol string) (*Stock, error) {
	var stock Stock
	err := s.coll.FindOne(ctx, bson.M{"symbol": symbol}).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find stock %s: %w", symbol, err)
	}
	return &stock, nil
}

// Upsert overwrites the record for symbol, creating it if absent.
// The second return value reports whether a new record was created.
func (s *StockStore) Upsert(ctx context.Context, symbol, name string, price, change float64) (*Stock, bool, error) {
	update := bson.M{"$set": bson.M{
		"symbol":       symbol,
		"name":         name,
		"price":        price,
		"change":       change,
		"last_updated": time.Now().UTC(),
	}}

	res, err := s.coll.UpdateOne(ctx, bson.M{"symbol": symbol}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert stock %s: %w", symbol, err)
	}

	stock, err := s.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, false, err
	}
	return stock, res.UpsertedCount > 0, nil
}

// UpdateFields sets price and change on an existing record, or fails with ErrNotFound.
func (s *StockStore) UpdateFields(ctx context.Context, symbol string, price, change float64) (*Stock, error) {
	update := bson.M{"$set": bson.M{
		"price":        price,
		"change":       change,
		"last_updated": time.Now().UTC(),
	}}

	var stock Stock
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"symbol": symbol}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update stock %s: %w", symbol, err)
	}
	return &stock, nil
}

// Delete removes the record for symbol, or fails with ErrNotFound.
func (s *StockStore) Delete(ctx context.Context, symbol string) error {
	err := s.coll.FindOneAndDelete(ctx, bson.M{"symbol": symbol}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete stock %s: %w", symbol, err)
	}
	return nil
}
