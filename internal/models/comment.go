// Package models содержит доменные сущности discussion-сервиса.
package models

import "time"

// ApprovalState — состояние модерации комментария.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalSpam     ApprovalState = "spam"
	ApprovalTrashed  ApprovalState = "trashed"
)

// Comment — доменная модель комментария (MongoDB).
// Важно:
//   - ID — положительное целое, уникальное в пределах сервиса;
//   - ParentID == 0 — комментарий верхнего уровня;
//   - AuthorID == 0 — гость, имя берётся из AuthorName;
//   - VoterIDs — множество проголосовавших (без повторов, порядок не важен);
//   - Retraction != nil — комментарий в состоянии «отозван».
//
// Содержимое комментария движок не меняет: все пометки (глубина, ранг, скрытие)
// живут в производных структурах пакета thread.
type Comment struct {
	ID            int64           `bson:"_id"`
	ParentID      int64           `bson:"parent_id"`
	ContentItemID int64           `bson:"item_id"`
	AuthorID      int64           `bson:"author_id"`
	AuthorName    string          `bson:"author_name,omitempty"`
	CreatedAt     time.Time       `bson:"created_at"`
	Approval      ApprovalState   `bson:"approval"`
	Body          string          `bson:"body"`
	VoterIDs      []int64         `bson:"voter_ids"`
	Retraction    *RetractionMark `bson:"retraction,omitempty"`
}

// IsTopLevel сообщает, что у комментария нет родителя.
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == 0
}

// IsRetracted сообщает, что на комментарии стоит отметка об отзыве.
func (c *Comment) IsRetracted() bool {
	return c.Retraction != nil
}

// RetractionMark — отметка об отзыве комментария.
// RetractedBy == 0 — инициатор неизвестен (историческая запись).
type RetractionMark struct {
	RetractedAt time.Time `bson:"at"`
	RetractedBy int64     `bson:"by,omitempty"`
}
