package store

import (
	"context"
	"fmt"
	"time"

	"machinery-gateway/internal/model"
)

// CreateReading inserts a new sensor reading. The referenced machine must
// exist; otherwise ErrNotFound is returned and nothing is written. A missing
// reading timestamp defaults to the creation time.
func (s *gormStore) CreateReading(ctx context.Context, r *model.Reading) error {
	tx := s.db.WithContext(ctx)

	var count int64
	if err := tx.Model(&model.Machine{}).Where("id = ?", r.MachineID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to resolve machine %d: %w", r.MachineID, err)
	}
	if count == 0 {
		return ErrNotFound
	}

	if r.ReadingTimestamp.IsZero() {
		r.ReadingTimestamp = time.Now().UTC()
	}

	if err := tx.Create(r).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

// ListReadings returns readings matching the filter, newest first by reading
// timestamp, windowed by skip/limit. Time bounds are inclusive on both ends.
func (s *gormStore) ListReadings(ctx context.Context, f ReadingFilter) ([]model.Reading, error) {
	q := s.db.WithContext(ctx).Model(&model.Reading{})

	if f.MachineID != nil {
		q = q.Where("maquina_id = ?", *f.MachineID)
	}
	if f.From != nil {
		q = q.Where("timestamp_lectura >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("timestamp_lectura <= ?", *f.To)
	}

	var readings []model.Reading
	if err := q.Order("timestamp_lectura DESC").
		Offset(f.Skip).Limit(f.Limit).
		Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return readings, nil
}

// GetReading returns the reading with the given id or ErrNotFound.
func (s *gormStore) GetReading(ctx context.Context, id int64) (*model.Reading, error) {
	var r model.Reading
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &r, nil
}

// UpdateReading applies the non-nil fields of up to the stored row.
func (s *gormStore) UpdateReading(ctx context.Context, id int64, up ReadingUpdate) (*model.Reading, error) {
	tx := s.db.WithContext(ctx)

	var r model.Reading
	if err := tx.First(&r, id).Error; err != nil {
		return nil, translateErr(err)
	}

	updates := map[string]any{}
	if up.ReadingTimestamp != nil {
		updates["timestamp_lectura"] = *up.ReadingTimestamp
	}
	if up.StartTimestamp != nil {
		updates["timestamp_arranque"] = *up.StartTimestamp
	}
	if up.Temperature != nil {
		updates["temperatura"] = *up.Temperature
	}
	if up.Vibration != nil {
		updates["vibracion"] = *up.Vibration
	}
	if up.Pressure != nil {
		updates["presion"] = *up.Pressure
	}
	if up.EngineRPM != nil {
		updates["rpm_motor"] = *up.EngineRPM
	}

	if len(updates) > 0 {
		if err := tx.Model(&r).Updates(updates).Error; err != nil {
			return nil, translateErr(err)
		}
	}

	if err := tx.First(&r, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &r, nil
}

// DeleteReading removes the reading with the given id or fails with
// ErrNotFound.
func (s *gormStore) DeleteReading(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Reading{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete reading %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
