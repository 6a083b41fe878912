package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Adal612Git/miNegocioApp-backend/internal/platform/logger"
)

const (
	connectTimeout = 10 * time.Second
	maxPoolSize    = 25
)

func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(uri).SetMaxPoolSize(maxPoolSize)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open mongo connection: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background()) // release the pool if ping fails
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("Successfully connected to MongoDB")
	return client, nil
}

// SupportsTransactions probes the deployment topology once at startup.
// Multi-document transactions need a replica set (or mongos); a standalone
// server rejects them. Probing up front replaces matching on the server's
// "Transaction numbers are only allowed on a replica set" error text per call.
func SupportsTransactions(ctx context.Context, client *mongo.Client) bool {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}

	res := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}})
	if err := res.Decode(&hello); err != nil {
		// pre-5.0 servers only answer the legacy command name
		res = client.Database("admin").RunCommand(ctx, bson.D{{Key: "isMaster", Value: 1}})
		if err := res.Decode(&hello); err != nil {
			logger.Error("SupportsTransactions: topology probe failed, assuming standalone", err)
			return false
		}
	}

	return hello.SetName != "" || hello.Msg == "isdbgrid"
}
