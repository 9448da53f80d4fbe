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

// notRetracted — фильтр «на комментарии нет отметки об отзыве».
var notRetracted = bson.E{Key: "retraction", Value: bson.D{{Key: "$exists", Value: false}}}

// normalize приводит времена к UTC.
func normalize(c *models.Comment) {
	c.CreatedAt = c.CreatedAt.UTC()
	if c.Retraction != nil {
		c.Retraction.RetractedAt = c.Retraction.RetractedAt.UTC()
	}
}

// ApprovedComments возвращает одобренные комментарии материала в хронологическом порядке.
func (m *Mongo) ApprovedComments(ctx context.Context, itemID int64) ([]models.Comment, error) {
	const op = "storage/mongo/ApprovedComments"

	filter := bson.D{
		{Key: "item_id", Value: itemID},
		{Key: "approval", Value: models.ApprovalApproved},
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := m.comments.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	out := make([]models.Comment, 0)
	for cur.Next(ctx) {
		var c models.Comment
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		normalize(&c)
		out = append(out, c)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return out, nil
}

// CommentByID возвращает комментарий по идентификатору.
// Если запись не найдена — storage.ErrNotFound.
func (m *Mongo) CommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	const op = "storage/mongo/CommentByID"

	var out models.Comment
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	normalize(&out)

	return &out, nil
}

// RetractionMark возвращает отметку об отзыве (nil — комментарий активен).
func (m *Mongo) RetractionMark(ctx context.Context, commentID int64) (*models.RetractionMark, error) {
	const op = "storage/mongo/RetractionMark"

	var out struct {
		Retraction *models.RetractionMark `bson:"retraction"`
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "retraction", Value: 1}})
	if err := m.comments.FindOne(ctx, bson.D{{Key: "_id", Value: commentID}}, opts).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if out.Retraction != nil {
		out.Retraction.RetractedAt = out.Retraction.RetractedAt.UTC()
	}

	return out.Retraction, nil
}

// ToggleVote переключает голос одним pipeline-обновлением документа:
// если userID есть в voter_ids — убираем ($setDifference), иначе добавляем ($setUnion).
// Конкурентные переключения не теряют обновлений.
func (m *Mongo) ToggleVote(ctx context.Context, commentID, userID int64) (bool, int, error) {
	const op = "storage/mongo/ToggleVote"

	voters := bson.D{{Key: "$ifNull", Value: bson.A{"$voter_ids", bson.A{}}}}
	pipeline := mongodriver.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "voter_ids", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{userID, voters}}},
				bson.D{{Key: "$setDifference", Value: bson.A{voters, bson.A{userID}}}},
				bson.D{{Key: "$setUnion", Value: bson.A{voters, bson.A{userID}}}},
			}}}},
		}}},
	}

	filter := bson.D{{Key: "_id", Value: commentID}, notRetracted}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.D{{Key: "voter_ids", Value: 1}})

	var out struct {
		VoterIDs []int64 `bson:"voter_ids"`
	}
	if err := m.comments.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&out); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return false, 0, fmt.Errorf("%s: %w", op, m.missingOrInvalid(ctx, commentID))
		}

		return false, 0, fmt.Errorf("%s: %w", op, err)
	}

	voted := false
	for _, id := range out.VoterIDs {
		if id == userID {
			voted = true
			break
		}
	}

	return voted, len(out.VoterIDs), nil
}

// Retract ставит отметку и, если комментарий закреплён, снимает закрепление в той же транзакции.
// Обе записи меняют документ комментария (rev), поэтому параллельное закрепление
// того же комментария конфликтует с отзывом и повторяется драйвером.
func (m *Mongo) Retract(ctx context.Context, commentID int64, mark models.RetractionMark) (bool, bool, error) {
	const op = "storage/mongo/Retract"

	var changed, pinCleared bool
	err := m.withTx(ctx, func(sc mongodriver.SessionContext) error {
		changed, pinCleared = false, false

		var before models.Comment
		err := m.comments.FindOneAndUpdate(sc,
			bson.D{{Key: "_id", Value: commentID}, notRetracted},
			bson.D{
				{Key: "$set", Value: bson.D{{Key: "retraction", Value: mark}}},
				{Key: "$inc", Value: bson.D{{Key: "rev", Value: 1}}},
			},
			options.FindOneAndUpdate().SetProjection(bson.D{{Key: "item_id", Value: 1}}),
		).Decode(&before)
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			// Уже отозван — no-op; иначе комментария нет.
			n, cntErr := m.comments.CountDocuments(sc, bson.D{{Key: "_id", Value: commentID}})
			if cntErr != nil {
				return cntErr
			}
			if n == 0 {
				return storage.ErrNotFound
			}
			return nil
		}
		if err != nil {
			return err
		}
		changed = true

		res, err := m.items.UpdateOne(sc,
			bson.D{{Key: "_id", Value: before.ContentItemID}, {Key: "pinned_comment_id", Value: commentID}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "pinned_comment_id", Value: int64(0)}}}},
		)
		if err != nil {
			return err
		}
		pinCleared = res.ModifiedCount > 0

		return nil
	})
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", op, err)
	}

	return changed, pinCleared, nil
}

// Restore снимает отметку об отзыве.
func (m *Mongo) Restore(ctx context.Context, commentID int64) (bool, error) {
	const op = "storage/mongo/Restore"

	res, err := m.comments.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: commentID}, {Key: "retraction", Value: bson.D{{Key: "$exists", Value: true}}}},
		bson.D{
			{Key: "$unset", Value: bson.D{{Key: "retraction", Value: ""}}},
			{Key: "$inc", Value: bson.D{{Key: "rev", Value: 1}}},
		},
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		n, err := m.comments.CountDocuments(ctx, bson.D{{Key: "_id", Value: commentID}})
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		if n == 0 {
			return false, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return false, nil
	}

	return true, nil
}

// missingOrInvalid различает «комментария нет» и «комментарий есть, но не подходит».
func (m *Mongo) missingOrInvalid(ctx context.Context, commentID int64) error {
	n, err := m.comments.CountDocuments(ctx, bson.D{{Key: "_id", Value: commentID}})
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return storage.ErrInvalidTarget
}
