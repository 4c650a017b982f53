package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// maxInClauseIDs is the largest ID batch sent in a single $in query.
// Larger sets are chunked by the stores before querying.
const maxInClauseIDs = 30

// connectTimeout bounds the initial connection and ping.
const connectTimeout = 10 * time.Second

// Client wraps a MongoDB database handle for the primary store.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(database),
	}, nil
}

// Ping checks whether the MongoDB deployment is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying MongoDB client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Database exposes the database handle for store constructors.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// chunkIDs splits ids into slices of at most maxInClauseIDs entries.
func chunkIDs(ids []string) [][]string {
	if len(ids) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(ids)+maxInClauseIDs-1)/maxInClauseIDs)
	for len(ids) > maxInClauseIDs {
		chunks = append(chunks, ids[:maxInClauseIDs])
		ids = ids[maxInClauseIDs:]
	}
	return append(chunks, ids)
}
