package repository

import (
	"designer/internal/app/ds"

	"gorm.io/gorm"
)

// Range - диапазон размера, границы включительно. nil означает отсутствие ограничения.
type Range struct {
	Min *float64
	Max *float64
}

type ModuleFilter struct {
	Category int
	Width    Range
	Height   Range
	Depth    Range
}

// QueryModules ищет модули указанной категории в заданных диапазонах размеров
func (r *Repository) QueryModules(filter ModuleFilter) ([]ds.Module, error) {
	query := r.db.Where(map[string]interface{}{"type": filter.Category})
	query = applyRange(query, "width", filter.Width)
	query = applyRange(query, "height", filter.Height)
	query = applyRange(query, "depth", filter.Depth)

	modules := []ds.Module{}
	err := query.Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func applyRange(query *gorm.DB, column string, rng Range) *gorm.DB {
	if rng.Min != nil {
		query = query.Where(column+" >= ?", *rng.Min)
	}
	if rng.Max != nil {
		query = query.Where(column+" <= ?", *rng.Max)
	}
	return query
}

// CreateModules добавляет модули каталога пачками (используется при загрузке данных)
func (r *Repository) CreateModules(modules []ds.Module) error {
	if len(modules) == 0 {
		return nil
	}
	return r.db.CreateInBatches(&modules, 100).Error
}

// CountModulesByType - количество модулей в каждой категории
func (r *Repository) CountModulesByType() (map[int]int64, error) {
	var rows []struct {
		Type  int
		Count int64
	}
	err := r.db.Model(&ds.Module{}).Select("type, count(*) as count").Group("type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}
