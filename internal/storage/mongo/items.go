package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-news-discussions/internal/models"
	"github.com/pribylovaa/go-news-discussions/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContentItem возвращает материал по идентификатору.
func (m *Mongo) ContentItem(ctx context.Context, itemID int64) (*models.ContentItem, error) {
	const op = "storage/mongo/ContentItem"

	var out models.ContentItem
	if err := m.items.FindOne(ctx, bson.D{{Key: "_id", Value: itemID}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// PinnedCommentID возвращает id закреплённого комментария (0 — ничего не закреплено).
func (m *Mongo) PinnedCommentID(ctx context.Context, itemID int64) (int64, error) {
	const op = "storage/mongo/PinnedCommentID"

	var out struct {
		Pinned int64 `bson:"pinned_comment_id"`
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "pinned_comment_id", Value: 1}})
	if err := m.items.FindOne(ctx, bson.D{{Key: "_id", Value: itemID}}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return out.Pinned, nil
}

// SetPinnedComment закрепляет комментарий (0 — снять закрепление).
// Цель перепроверяется в транзакции и «трогается» ($inc rev), чтобы параллельный отзыв
// того же комментария не оставил висящее закрепление.
func (m *Mongo) SetPinnedComment(ctx context.Context, itemID, commentID int64) error {
	const op = "storage/mongo/SetPinnedComment"

	err := m.withTx(ctx, func(sc mongodriver.SessionContext) error {
		if commentID != 0 {
			res, err := m.comments.UpdateOne(sc,
				bson.D{
					{Key: "_id", Value: commentID},
					{Key: "item_id", Value: itemID},
					{Key: "parent_id", Value: int64(0)},
					{Key: "approval", Value: models.ApprovalApproved},
					notRetracted,
				},
				bson.D{{Key: "$inc", Value: bson.D{{Key: "rev", Value: 1}}}},
			)
			if err != nil {
				return err
			}
			if res.MatchedCount == 0 {
				return m.missingOrInvalid(sc, commentID)
			}
		}

		res, err := m.items.UpdateOne(sc,
			bson.D{{Key: "_id", Value: itemID}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "pinned_comment_id", Value: commentID}}}},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return storage.ErrNotFound
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
