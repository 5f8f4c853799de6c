package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"git.fiblab.net/sim/itinerary/router"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

const MONGO_TIMEOUT = 10 * time.Second

// LoadNetwork 从文件（YAML或JSON）或mongo集合读取航线网络，path为nil时使用示例网络
func LoadNetwork(ctx context.Context, mongoURI string, path *Path, baseCurrency string) (*router.Network, error) {
	var (
		network *router.Network
		err     error
	)
	switch {
	case path == nil:
		log.Info("no network given, use the built-in sample network")
		network = router.DefaultNetwork()
	case path.IsFile():
		network, err = loadNetworkFile(path.File)
	default:
		network, err = loadNetworkMongo(ctx, mongoURI, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load network from %s: %w", path, err)
	}
	if network.Currency == "" {
		network.Currency = baseCurrency
	}
	return network, nil
}

func loadNetworkFile(filename string) (*router.Network, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	network := new(router.Network)
	if err := yaml.Unmarshal(data, network); err != nil {
		return nil, err
	}
	return network, nil
}

// mongo集合中每个文档为一个Airport
func loadNetworkMongo(ctx context.Context, mongoURI string, path *Path) (*router.Network, error) {
	if mongoURI == "" {
		return nil, fmt.Errorf("mongo uri is required for %s", path)
	}
	ctx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(context.Background())

	cur, err := client.Database(path.DB).Collection(path.Coll).Find(
		ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	airports := make([]router.Airport, 0)
	if err := cur.All(ctx, &airports); err != nil {
		return nil, err
	}
	log.Infof("downloaded %d airports from %s", len(airports), path)
	return &router.Network{Airports: airports}, nil
}
