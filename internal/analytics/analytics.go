package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"shop-consultant/internal/recommend"
	"shop-consultant/internal/storage"
)

// DailyStats содержит статистику консультаций за день
type DailyStats struct {
	Date            string              `json:"date"`
	TotalMessages   int                 `json:"total_messages"`
	UniqueUsers     int                 `json:"unique_users"`
	FailedAnswers   int                 `json:"failed_answers"`
	AvgAnswerLength int                 `json:"avg_answer_length"`
	UserStats       map[int64]UserStats `json:"user_stats"`
}

// UserStats содержит статистику по пользователю
type UserStats struct {
	UserID   int64 `json:"user_id"`
	Messages int   `json:"messages"`
}

// DayBounds returns [start, end) of the day containing t in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// AnalyzeDay считает статистику по записям за день, в который попадает targetDate
func AnalyzeDay(records []storage.Record, targetDate time.Time) *DailyStats {
	startOfDay, endOfDay := DayBounds(targetDate)

	stats := &DailyStats{
		Date:      startOfDay.Format("2006-01-02"),
		UserStats: make(map[int64]UserStats),
	}

	answerRunes := 0
	for _, rec := range records {
		if rec.Timestamp.Before(startOfDay) || !rec.Timestamp.Before(endOfDay) {
			continue
		}
		// записи без сообщения пользователя не считаем
		if rec.UserMessage == "" {
			continue
		}
		stats.TotalMessages++
		answerRunes += utf8.RuneCountInString(rec.BotResponse)
		if rec.BotResponse == recommend.Apology {
			stats.FailedAnswers++
		}

		us := stats.UserStats[rec.UserID]
		us.UserID = rec.UserID
		us.Messages++
		stats.UserStats[rec.UserID] = us
	}

	stats.UniqueUsers = len(stats.UserStats)
	if stats.TotalMessages > 0 {
		stats.AvgAnswerLength = answerRunes / stats.TotalMessages
	}
	return stats
}

// Summary renders the report sent to the store administrator.
func (ds *DailyStats) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Статистика консультаций за %s:\n\n", ds.Date)
	fmt.Fprintf(&sb, "- Всего запросов: %d\n", ds.TotalMessages)
	fmt.Fprintf(&sb, "- Уникальных пользователей: %d\n", ds.UniqueUsers)
	fmt.Fprintf(&sb, "- Ответов с ошибкой: %d\n", ds.FailedAnswers)
	fmt.Fprintf(&sb, "- Средняя длина ответа: %d символов\n", ds.AvgAnswerLength)

	if len(ds.UserStats) == 0 {
		return sb.String()
	}

	users := make([]UserStats, 0, len(ds.UserStats))
	for _, us := range ds.UserStats {
		users = append(users, us)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Messages != users[j].Messages {
			return users[i].Messages > users[j].Messages
		}
		return users[i].UserID < users[j].UserID
	})

	fmt.Fprintf(&sb, "\nАктивность пользователей (%d):\n", len(users))
	for _, us := range users {
		fmt.Fprintf(&sb, "- Пользователь %d: %d запросов\n", us.UserID, us.Messages)
	}
	return sb.String()
}

// Report загружает записи за день, в который попадает now, и возвращает сводку
func Report(ctx context.Context, r storage.Reader, now time.Time) (string, error) {
	from, to := DayBounds(now)
	records, err := r.LoadBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("load records: %w", err)
	}
	return AnalyzeDay(records, from).Summary(), nil
}
