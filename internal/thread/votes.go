package thread

import "github.com/pribylovaa/go-news-discussions/internal/models"

// VoteCount — число голосов за комментарий: мощность множества VoterIDs.
// Повторы во входных данных не учитываются.
func VoteCount(c *models.Comment) int {
	if c == nil || len(c.VoterIDs) == 0 {
		return 0
	}

	seen := make(map[int64]struct{}, len(c.VoterIDs))
	for _, id := range c.VoterIDs {
		seen[id] = struct{}{}
	}

	return len(seen)
}

// HasVoted сообщает, есть ли userID среди проголосовавших. Гость (0) не голосует.
func HasVoted(c *models.Comment, userID int64) bool {
	if c == nil || userID == 0 {
		return false
	}

	for _, id := range c.VoterIDs {
		if id == userID {
			return true
		}
	}

	return false
}

// ToggleVoter переключает голос userID: добавляет, если его не было, иначе убирает.
// Возвращает новое множество (исходный срез не меняется) и итоговое состояние голоса.
func ToggleVoter(voters []int64, userID int64) ([]int64, bool) {
	next := make([]int64, 0, len(voters)+1)
	found := false
	seen := make(map[int64]struct{}, len(voters))
	for _, id := range voters {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if id == userID {
			found = true
			continue
		}
		next = append(next, id)
	}

	if found {
		return next, false
	}

	return append(next, userID), true
}

// Rollup — сумма голосов за комментарий верхнего уровня rootID и всех его потомков.
// Всегда считается заново по снимку; ok=false, если rootID нет в лесу.
func Rollup(f *Forest, rootID int64) (int, bool) {
	nodes := f.Subtree(rootID)
	if len(nodes) == 0 {
		return 0, false
	}

	total := 0
	for _, n := range nodes {
		total += VoteCount(n.Comment)
	}

	return total, true
}
