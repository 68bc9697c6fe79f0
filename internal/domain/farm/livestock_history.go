package farm

import (
	"sort"
	"time"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Counts is a snapshot of the seven head-count buckets.
type Counts struct {
	Cows         int `json:"cows"`
	Bulls        int `json:"bulls"`
	Steers       int `json:"steers"`
	YoungSteers  int `json:"young_steers"`
	Heifers      int `json:"heifers"`
	MaleCalves   int `json:"male_calves"`
	FemaleCalves int `json:"female_calves"`
}

// Add returns the element-wise sum of two count vectors
func (c Counts) Add(other Counts) Counts {
	return Counts{
		Cows:         c.Cows + other.Cows,
		Bulls:        c.Bulls + other.Bulls,
		Steers:       c.Steers + other.Steers,
		YoungSteers:  c.YoungSteers + other.YoungSteers,
		Heifers:      c.Heifers + other.Heifers,
		MaleCalves:   c.MaleCalves + other.MaleCalves,
		FemaleCalves: c.FemaleCalves + other.FemaleCalves,
	}
}

// Total returns the sum across all buckets
func (c Counts) Total() int {
	return c.Cows + c.Bulls + c.Steers + c.YoungSteers + c.Heifers + c.MaleCalves + c.FemaleCalves
}

// LivestockHistory is an immutable snapshot of a field's head counts at a
// point in time. One row is appended per field per mutating operation; rows
// are never updated or deleted.
type LivestockHistory struct {
	shared.BaseEntity
	FieldID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Date         time.Time `gorm:"type:date;not null;index"`
	Cows         int       `gorm:"not null;default:0"`
	Bulls        int       `gorm:"not null;default:0"`
	Steers       int       `gorm:"not null;default:0"`
	YoungSteers  int       `gorm:"not null;default:0"`
	Heifers      int       `gorm:"not null;default:0"`
	MaleCalves   int       `gorm:"not null;default:0"`
	FemaleCalves int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (LivestockHistory) TableName() string {
	return "livestock_history"
}

// SnapshotOf captures the field's full post-mutation count vector for the
// given wall-clock date.
func SnapshotOf(field *Field, date time.Time) *LivestockHistory {
	return &LivestockHistory{
		BaseEntity:   shared.NewBaseEntity(),
		FieldID:      field.ID,
		Date:         date,
		Cows:         field.Cows,
		Bulls:        field.Bulls,
		Steers:       field.Steers,
		YoungSteers:  field.YoungSteers,
		Heifers:      field.Heifers,
		MaleCalves:   field.MaleCalves,
		FemaleCalves: field.FemaleCalves,
	}
}

// Counts returns the snapshot's count vector
func (h *LivestockHistory) Counts() Counts {
	return Counts{
		Cows:         h.Cows,
		Bulls:        h.Bulls,
		Steers:       h.Steers,
		YoungSteers:  h.YoungSteers,
		Heifers:      h.Heifers,
		MaleCalves:   h.MaleCalves,
		FemaleCalves: h.FemaleCalves,
	}
}

// HistoryPoint is one entry of an aggregated head-count time series.
type HistoryPoint struct {
	Date   time.Time `json:"date"`
	Counts Counts    `json:"counts"`
}

// AggregateHistory reconstructs the global head-count time series from raw
// history rows across any number of fields. Rows are grouped by date
// ascending; at each date the latest known vector of every updated field
// overwrites its tracked state, then all tracked vectors are summed. The
// result has one point per distinct date that carries at least one row.
func AggregateHistory(rows []LivestockHistory) []HistoryPoint {
	if len(rows) == 0 {
		return nil
	}

	byDate := make(map[time.Time][]LivestockHistory)
	for _, row := range rows {
		// Bucket on the calendar date in the row's own location, not on
		// UTC-epoch day boundaries.
		y, m, d := row.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		byDate[day] = append(byDate[day], row)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	fieldStates := make(map[uuid.UUID]Counts)
	points := make([]HistoryPoint, 0, len(dates))
	for _, d := range dates {
		// Same-day rows are applied in creation order so the last
		// mutation of the day wins for each field.
		dayRows := byDate[d]
		sort.Slice(dayRows, func(i, j int) bool { return dayRows[i].CreatedAt.Before(dayRows[j].CreatedAt) })
		for _, row := range dayRows {
			fieldStates[row.FieldID] = row.Counts()
		}

		var total Counts
		for _, counts := range fieldStates {
			total = total.Add(counts)
		}
		points = append(points, HistoryPoint{Date: d, Counts: total})
	}
	return points
}
