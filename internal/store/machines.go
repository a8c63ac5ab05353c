package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"machinery-gateway/internal/model"
)

// CreateMachine inserts a new machine after pre-checking that the serial
// number is free. The pre-check gives a clear error message; the unique
// index on numero_serie still backs it against concurrent inserts.
func (s *gormStore) CreateMachine(ctx context.Context, m *model.Machine) error {
	tx := s.db.WithContext(ctx)

	var count int64
	if err := tx.Model(&model.Machine{}).
		Where("numero_serie = ?", m.SerialNumber).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check serial number uniqueness: %w", err)
	}
	if count > 0 {
		return ErrConflict
	}

	if err := tx.Create(m).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

// ListMachines returns machines matching the filter, windowed by skip/limit.
// An optional search term matches name, serial number or engine,
// case-insensitively.
func (s *gormStore) ListMachines(ctx context.Context, f MachineFilter) ([]model.Machine, error) {
	q := s.db.WithContext(ctx).Model(&model.Machine{})

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("lower(nombre) LIKE ? OR lower(numero_serie) LIKE ? OR lower(motor) LIKE ?",
			like, like, like)
	}

	var machines []model.Machine
	if err := q.Offset(f.Skip).Limit(f.Limit).Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}

// GetMachine returns the machine with the given id or ErrNotFound.
func (s *gormStore) GetMachine(ctx context.Context, id int64) (*model.Machine, error) {
	var m model.Machine
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &m, nil
}

// UpdateMachine applies the non-nil fields of up to the stored row. Changing
// the serial number to one held by a different machine fails with
// ErrConflict.
func (s *gormStore) UpdateMachine(ctx context.Context, id int64, up MachineUpdate) (*model.Machine, error) {
	tx := s.db.WithContext(ctx)

	var m model.Machine
	if err := tx.First(&m, id).Error; err != nil {
		return nil, translateErr(err)
	}

	updates := map[string]any{}
	if up.Name != nil {
		updates["nombre"] = *up.Name
	}
	if up.Description != nil {
		updates["descripcion"] = *up.Description
	}
	if up.SerialNumber != nil && *up.SerialNumber != m.SerialNumber {
		var count int64
		if err := tx.Model(&model.Machine{}).
			Where("numero_serie = ? AND id <> ?", *up.SerialNumber, id).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check serial number uniqueness: %w", err)
		}
		if count > 0 {
			return nil, ErrConflict
		}
		updates["numero_serie"] = *up.SerialNumber
	}
	if up.Engine != nil {
		updates["motor"] = *up.Engine
	}

	if len(updates) > 0 {
		if err := tx.Model(&m).Updates(updates).Error; err != nil {
			return nil, translateErr(err)
		}
	}

	if err := tx.First(&m, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &m, nil
}

// DeleteMachine removes the machine and all of its readings in one
// transaction. The explicit reading delete keeps the cascade independent of
// whether the storage engine enforces the foreign key constraint.
func (s *gormStore) DeleteMachine(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Machine
		if err := tx.First(&m, id).Error; err != nil {
			return translateErr(err)
		}
		if err := tx.Where("maquina_id = ?", id).Delete(&model.Reading{}).Error; err != nil {
			return fmt.Errorf("failed to delete readings of machine %d: %w", id, err)
		}
		if err := tx.Delete(&model.Machine{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete machine %d: %w", id, err)
		}
		return nil
	})
}
