package tools

import (
	"fmt"
	"time"
)

const badDateFormat = "日付の形式を確認できませんでした。YYYY-MM-DD形式で日付を指定してください。"

// checkAvailability applies the fixed-rule schedule: configured closed
// weekdays (Monday=0 indexing) are always unavailable, everything else
// is always available. This is a stub for a real calendar backend; the
// closed-weekday table is configuration so the backend can be swapped
// without touching the dispatcher.
func checkAvailability(date, timeSlot string, closedWeekdays []int) string {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return badDateFormat
	}

	idx := mondayIndex(day)
	kanji := weekdayKanji[idx]

	for _, closed := range closedWeekdays {
		if idx == closed {
			return fmt.Sprintf("%s（%s曜日）は担当者がお休みをいただいております。平日でご都合の良い日はございますか。", date, kanji)
		}
	}

	if timeSlot != "" {
		return fmt.Sprintf("%s（%s曜日） %sは空いております。", date, kanji, timeSlot)
	}
	return fmt.Sprintf("%s（%s曜日）は対応可能です。", date, kanji)
}
