package repository

import (
	"context"
	"time"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	return client.Database(database), nil
}

// itemDocument is the stored form of an item. Position keeps catalog order.
type itemDocument struct {
	Position    int      `bson:"position"`
	Name        string   `bson:"name"`
	Price       int      `bson:"price"`
	Hashtags    []string `bson:"hashtags"`
	Description string   `bson:"description"`
}

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection(collection),
	}
}

// CreateIndexes creates the index that backs catalog ordering
func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "position", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(err, "failed to create position index")
	}
	return nil
}

func (m *MongoRepository) LoadItems(ctx context.Context) ([]domain.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query items")
	}
	defer cursor.Close(ctx)

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode items")
	}

	items := make([]domain.Item, 0, len(docs))
	for _, doc := range docs {
		item, err := domain.NewItem(doc.Name, doc.Price, doc.Hashtags, doc.Description)
		if err != nil {
			return nil, errors.Wrapf(err, "item at position %d", doc.Position)
		}
		items = append(items, item)
	}
	return items, nil
}

// SeedItems replaces the collection contents with items.
func (m *MongoRepository) SeedItems(ctx context.Context, items []domain.Item) error {
	if _, err := m.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrap(err, "failed to clear items")
	}
	if len(items) == 0 {
		return nil
	}

	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = itemDocument{
			Position:    i,
			Name:        item.Name,
			Price:       item.Price,
			Hashtags:    item.Hashtags,
			Description: item.Description,
		}
	}

	if _, err := m.collection.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(err, "failed to insert items")
	}
	return nil
}

func (m *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.collection.Database().Client().Disconnect(ctx)
}
