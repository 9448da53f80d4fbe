package mongo

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-news-discussions/internal/config"
	"github.com/pribylovaa/go-news-discussions/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	commentsCollection = "comments"
	itemsCollection    = "content_items"
)

var _ storage.CommentStore = (*Mongo)(nil)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
// Retract и SetPinnedComment используют многодокументные транзакции: нужен replica set.
type Mongo struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	comments *mongodriver.Collection
	items    *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(cfg.DB.Database)

	m := &Mongo{
		client:   cli,
		db:       db,
		comments: db.Collection(commentsCollection),
		items:    db.Collection(itemsCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping — проверка готовности для /healthz.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы:
//   - снимок материала: item_id + approval + created_at + _id;
//   - поиск закреплённого комментария по материалу не нужен: запись хранится в самом материале.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "item_id", Value: 1},
				{Key: "approval", Value: 1},
				{Key: "created_at", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("item_approval_created"),
		},
	}

	if _, err := m.comments.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return nil
}

// withTx выполняет fn в транзакции. Драйвер сам повторяет её при TransientTransactionError
// (в том числе при write conflict между отзывом и закреплением одного комментария).
func (m *Mongo) withTx(ctx context.Context, fn func(sc mongodriver.SessionContext) error) error {
	sess, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongodriver.SessionContext) (any, error) {
		return nil, fn(sc)
	})

	return err
}
