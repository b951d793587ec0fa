package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"github.com/zhouzirui/folio/backend/internal/model/message"
)

const (
	defaultMongoDatabase = "test"
	messagesCollection   = "messages"
)

// messageDocument is the stored shape. Records written by the previous
// service carry an ObjectId _id and a __v field.
type messageDocument struct {
	ID        bson.RawValue `bson:"_id"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Phone     string        `bson:"phone,omitempty"`
	Message   string        `bson:"message"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d messageDocument) toMessage() message.Message {
	msg := message.Message{
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
	}
	if oid, ok := d.ID.ObjectIDOK(); ok {
		msg.ID = oid.Hex()
	} else if id, ok := d.ID.StringValueOK(); ok {
		msg.ID = id
	}
	return msg
}

// MongoStore keeps messages in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ message.Store = (*MongoStore)(nil)

// NewMongoStore connects to uri and verifies the connection with a ping.
// The database comes from the uri path, falling back to "test".
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongo uri: %w", err)
	}
	database := cs.Database
	if database == "" {
		database = defaultMongoDatabase
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(messagesCollection),
	}, nil
}

// Save inserts msg as a single document.
func (s *MongoStore) Save(ctx context.Context, msg message.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if _, err := s.collection.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// List returns every message sorted by createdAt descending.
func (s *MongoStore) List(ctx context.Context) ([]message.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}

	defer cursor.Close(ctx)

	// _id is raw until toMessage copies it out, so convert per document
	messages := make([]message.Message, 0)
	for cursor.Next(ctx) {
		var doc messageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, doc.toMessage())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

// Ping checks the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
