package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// weekdayKanji maps Monday=0 weekday indexes to their kanji
var weekdayKanji = [7]string{"月", "火", "水", "木", "金", "土", "日"}

// daysLaterPattern extracts N from "N日後"
var daysLaterPattern = regexp.MustCompile(`(\d+)日後`)

const couldNotCalculate = "日付を計算できませんでした。具体的な日付を教えてください。"

// mondayIndex converts Go's Sunday=0 weekday to Monday=0 indexing
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// formatDateWithWeekday renders a date as "YYYY-MM-DD（X曜日）"
func formatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s（%s曜日）", t.Format("2006-01-02"), weekdayKanji[mondayIndex(t)])
}

// resolveRelativeDate turns a relative date expression into a concrete
// date against now. Word patterns match the whole trimmed expression:
// a qualified phrase like 来週の火曜 is NOT a bare 来週 and must not be
// silently rounded to +7 days — the caller is asked for a specific date
// instead of being given a guess.
func resolveRelativeDate(expr string, now time.Time) string {
	expr = strings.TrimSpace(expr)

	var resolved time.Time
	switch expr {
	case "明日":
		resolved = now.AddDate(0, 0, 1)
	case "明後日":
		resolved = now.AddDate(0, 0, 2)
	case "来週":
		resolved = now.AddDate(0, 0, 7)
	default:
		m := daysLaterPattern.FindStringSubmatch(expr)
		if m == nil {
			return couldNotCalculate
		}
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return couldNotCalculate
		}
		resolved = now.AddDate(0, 0, days)
	}

	return formatDateWithWeekday(resolved)
}
