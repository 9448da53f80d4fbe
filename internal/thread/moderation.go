package thread

import (
	"errors"
	"time"

	"github.com/pribylovaa/go-news-discussions/internal/models"
)

var (
	// ErrNotPermitted — у участника нет полномочий на операцию.
	ErrNotPermitted = errors.New("thread: not permitted")
	// ErrInvalidTarget — комментарий не может быть целью операции (например, закрепления).
	ErrInvalidTarget = errors.New("thread: invalid target")
)

// Actor — тот, кто выполняет операцию. UserID == 0 — гость.
type Actor struct {
	UserID    int64
	Moderator bool
}

// ActorFromAccount собирает Actor из учётной записи (nil — гость).
func ActorFromAccount(a *models.Account) Actor {
	if a == nil || a.Deleted() {
		return Actor{}
	}

	return Actor{UserID: a.ID, Moderator: a.CanModerate()}
}

// IsGuest сообщает, что участник не аутентифицирован.
func (a Actor) IsGuest() bool { return a.UserID == 0 }

func (a Actor) authored(c *models.Comment) bool {
	return !a.IsGuest() && c.AuthorID == a.UserID
}

// State — состояние комментария в машине отзыва.
type State int

const (
	StateActive State = iota
	StateRetracted
)

func (s State) String() string {
	if s == StateRetracted {
		return "retracted"
	}

	return "active"
}

// StateOf — текущее состояние комментария. «Восстановленный» неотличим от активного.
func StateOf(c *models.Comment) State {
	if c.IsRetracted() {
		return StateRetracted
	}

	return StateActive
}

// CanRetract — автор комментария (не гость) или модератор.
func CanRetract(c *models.Comment, a Actor) bool {
	return a.Moderator || a.authored(c)
}

// CanRestore — модератор всегда; автор только если отметку поставил он сам
// (или инициатор неизвестен). Отзыв модератором автор отменить не может.
func CanRestore(c *models.Comment, a Actor) bool {
	if a.Moderator {
		return true
	}
	if !a.authored(c) {
		return false
	}

	mark := c.Retraction
	return mark == nil || mark.RetractedBy == 0 || mark.RetractedBy == a.UserID
}

// RetractDecision — результат проверки перехода active -> retracted.
type RetractDecision struct {
	// Mark — отметка, которую нужно сохранить; nil, если переход не нужен (уже отозван).
	Mark *models.RetractionMark
}

// Retract проверяет переход в состояние «отозван». Повторный отзыв — no-op, а не ошибка.
func Retract(c *models.Comment, a Actor, now time.Time) (RetractDecision, error) {
	if !CanRetract(c, a) {
		return RetractDecision{}, ErrNotPermitted
	}
	if c.IsRetracted() {
		return RetractDecision{}, nil
	}

	return RetractDecision{Mark: &models.RetractionMark{
		RetractedAt: now.UTC(),
		RetractedBy: a.UserID,
	}}, nil
}

// Restore проверяет переход retracted -> active. changed=false — комментарий не был отозван.
func Restore(c *models.Comment, a Actor) (changed bool, err error) {
	if !c.IsRetracted() {
		if !CanRetract(c, a) {
			return false, ErrNotPermitted
		}
		return false, nil
	}
	if !CanRestore(c, a) {
		return false, ErrNotPermitted
	}

	return true, nil
}

// CanManagePins — автор материала или модератор. Автор комментария сам себя не закрепляет.
func CanManagePins(item *models.ContentItem, a Actor) bool {
	if a.Moderator {
		return true
	}

	return !a.IsGuest() && item.AuthorID == a.UserID
}

// CheckPinTarget проверяет, что комментарий можно закрепить на материале item:
// он принадлежит материалу, одобрен, находится на верхнем уровне и не отозван.
func CheckPinTarget(item *models.ContentItem, c *models.Comment) error {
	switch {
	case c.ContentItemID != item.ID:
		return ErrInvalidTarget
	case c.Approval != models.ApprovalApproved:
		return ErrInvalidTarget
	case !c.IsTopLevel():
		return ErrInvalidTarget
	case c.IsRetracted():
		return ErrInvalidTarget
	}

	return nil
}

// Pin — полная проверка закрепления commentID (0 — снять закрепление).
func Pin(item *models.ContentItem, c *models.Comment, a Actor) error {
	if !CanManagePins(item, a) {
		return ErrNotPermitted
	}
	if c == nil {
		return nil
	}

	return CheckPinTarget(item, c)
}

// EffectivePin — id закреплённого комментария, который действительно нужно показать первым.
// Устаревшая запись (комментарий отозван или не на верхнем уровне) игнорируется.
func EffectivePin(f *Forest, pinnedID int64) int64 {
	if pinnedID == 0 {
		return 0
	}

	n, ok := f.Node(pinnedID)
	if !ok || n.Depth != 1 || n.Comment.ParentID != 0 || n.Comment.IsRetracted() {
		return 0
	}

	return pinnedID
}
