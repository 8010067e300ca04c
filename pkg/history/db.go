package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/spencer-p/goldenhour/pkg/data"
	"github.com/spencer-p/goldenhour/pkg/geo"
)

// DBStore keeps recent places in Postgres.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Recent(ctx context.Context, visitor string) (Recent, error) {
	var rows []data.RecentPlace
	err := s.db.WithContext(ctx).
		Where("visitor_id = ?", visitor).
		Order("position").
		Limit(MaxRecent).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent places: %w", err)
	}

	r := make(Recent, 0, len(rows))
	for _, row := range rows {
		r = append(r, geo.Place{
			Label:      row.Label,
			Coordinate: geo.Coordinate{Lat: row.Lat, Long: row.Long},
			TimeZone:   row.TimeZone,
		})
	}
	return r, nil
}

// Save replaces the visitor's places. The last writer wins.
func (s *DBStore) Save(ctx context.Context, visitor string, r Recent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("visitor_id = ?", visitor).Delete(&data.RecentPlace{}).Error; err != nil {
			return fmt.Errorf("failed to clear recent places: %w", err)
		}
		if len(r) == 0 {
			return nil
		}
		rows := make([]data.RecentPlace, 0, len(r))
		for i, p := range r {
			rows = append(rows, data.RecentPlace{
				VisitorID: visitor,
				Position:  i,
				Label:     p.Label,
				Lat:       p.Lat,
				Long:      p.Long,
				TimeZone:  p.TimeZone,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save recent places: %w", err)
		}
		return nil
	})
}
