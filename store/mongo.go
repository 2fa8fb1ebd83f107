package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseai/server/domain"
)

const (
	collectionName = "chat_sessions"
	listLimit      = 100
)

// MongoStore implements Store using MongoDB.
type MongoStore struct {
	client   *mongo.Client
	sessions *mongo.Collection
}

// sessionDoc is the stored shape of a session. The raw ObjectID stays
// private to this package; domain.Session carries its hex form.
type sessionDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PatientName    string             `bson:"patient_name"`
	Problem        string             `bson:"problem"`
	AdditionalInfo string             `bson:"additional_info"`
	AIResponse     string             `bson:"ai_response"`
	Messages       []domain.Message   `bson:"messages"`
	Timestamp      time.Time          `bson:"timestamp"`
	Pinned         bool               `bson:"pinned"`
}

func (d *sessionDoc) toDomain() *domain.Session {
	return &domain.Session{
		ID:             d.ID.Hex(),
		PatientName:    d.PatientName,
		Problem:        d.Problem,
		AdditionalInfo: d.AdditionalInfo,
		AIResponse:     d.AIResponse,
		Messages:       d.Messages,
		Timestamp:      d.Timestamp,
		Pinned:         d.Pinned,
	}
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// bounded ping. The returned store is safe for concurrent use.
func NewMongoStore(ctx context.Context, uri, database string, connectTimeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &MongoStore{
		client:   client,
		sessions: client.Database(database).Collection(collectionName),
	}, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// Insert stores a new session and returns the driver-assigned ID.
func (s *MongoStore) Insert(ctx context.Context, session *domain.Session) (string, error) {
	doc := &sessionDoc{
		PatientName:    session.PatientName,
		Problem:        session.Problem,
		AdditionalInfo: session.AdditionalInfo,
		AIResponse:     session.AIResponse,
		Messages:       session.Messages,
		Timestamp:      session.Timestamp,
		Pinned:         session.Pinned,
	}

	res, err := s.sessions.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindAll returns up to 100 sessions, pinned first, newest first within
// each group.
func (s *MongoStore) FindAll(ctx context.Context) ([]domain.Session, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "pinned", Value: -1}, {Key: "timestamp", Value: -1}}).
		SetLimit(listLimit)

	cursor, err := s.sessions.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []sessionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	out := make([]domain.Session, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

// FindByID retrieves a single session.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc sessionDoc
	err = s.sessions.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies a partial update and returns the updated session.
func (s *MongoStore) Update(ctx context.Context, id string, patch SessionPatch) (*domain.Session, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Problem != nil {
		set["problem"] = *patch.Problem
	}
	if patch.Pinned != nil {
		set["pinned"] = *patch.Pinned
	}
	if len(set) == 0 {
		return nil, domain.ErrNoValidFields
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc sessionDoc
	err = s.sessions.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateConversation overwrites the turn fields of an existing session.
// The document ID and pinned flag are left untouched.
func (s *MongoStore) UpdateConversation(ctx context.Context, id string, session *domain.Session) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	set := bson.M{
		"problem":         session.Problem,
		"additional_info": session.AdditionalInfo,
		"ai_response":     session.AIResponse,
		"messages":        session.Messages,
		"timestamp":       session.Timestamp,
	}

	res, err := s.sessions.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a session.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := s.sessions.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
