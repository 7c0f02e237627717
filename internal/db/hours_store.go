package db

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/ink102/studio-status/internal/hours"
)

// LoadSchedule reads business_hours into a schedule. Days without a row are
// closed.
func (db *DB) LoadSchedule(ctx context.Context) (hours.WeeklySchedule, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT day_of_week, opens_at, closes_at FROM business_hours ORDER BY day_of_week")
	if err != nil {
		return hours.WeeklySchedule{}, fmt.Errorf("query business hours: %w", err)
	}
	defer rows.Close()

	days := make(map[time.Weekday]hours.DayHours, 7)
	for rows.Next() {
		var (
			day      int64
			opensAt  string
			closesAt string
		)
		if err := rows.Scan(&day, &opensAt, &closesAt); err != nil {
			return hours.WeeklySchedule{}, fmt.Errorf("scan business hours: %w", err)
		}
		open, err := hours.ParseClock(opensAt)
		if err != nil {
			return hours.WeeklySchedule{}, fmt.Errorf("day %d opens_at: %w", day, err)
		}
		closeAt, err := hours.ParseClock(closesAt)
		if err != nil {
			return hours.WeeklySchedule{}, fmt.Errorf("day %d closes_at: %w", day, err)
		}
		days[time.Weekday(day)] = hours.DayHours{Open: open, Close: closeAt}
	}
	if err := rows.Err(); err != nil {
		return hours.WeeklySchedule{}, fmt.Errorf("iterate business hours: %w", err)
	}

	schedule, err := hours.NewWeeklySchedule(days)
	if err != nil {
		return hours.WeeklySchedule{}, fmt.Errorf("stored business hours are invalid: %w", err)
	}
	return schedule, nil
}

// ReplaceSchedule overwrites business_hours with s in one transaction.
func (db *DB) ReplaceSchedule(ctx context.Context, s hours.WeeklySchedule) error {
	return db.RunInTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM business_hours"); err != nil {
			return fmt.Errorf("clear business hours: %w", err)
		}
		for _, day := range s.Days() {
			if !day.Open {
				continue
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO business_hours (day_of_week, opens_at, closes_at) VALUES (?, ?, ?)",
				int64(day.Weekday),
				clockValue(day.Hours.Open),
				clockValue(day.Hours.Close),
			)
			if err != nil {
				return fmt.Errorf("insert hours for %s: %w", day.Weekday, err)
			}
		}
		return nil
	})
}

// clockValue stores a fractional hour as HH:MM, the format the table uses.
func clockValue(hour float64) string {
	total := int(math.Round(hour * 60))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
