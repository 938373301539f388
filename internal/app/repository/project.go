package repository

import (
	"time"

	"designer/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с проектами

func (r *Repository) ListProjects(ownerID uint) ([]ds.Project, error) {
	projects := []ds.Project{}
	err := r.db.Where("user_id = ?", ownerID).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *Repository) CreateProject(ownerID uint, name, content string) (*ds.Project, error) {
	project := ds.Project{
		UserID:            &ownerID,
		Name:              name,
		ModifyingDatetime: time.Now(),
		Content:           content,
	}

	err := r.db.Create(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetOwnedProject возвращает проект, если он существует и принадлежит userID
func (r *Repository) GetOwnedProject(projectID, userID uint) (*ds.Project, error) {
	return ownedProject(r.db, projectID, userID)
}

// RenameProject меняет только имя; время изменения остаётся прежним
func (r *Repository) RenameProject(projectID uint, name string, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		project, err := ownedProject(tx, projectID, userID)
		if err != nil {
			return err
		}
		return tx.Model(project).Update("name", name).Error
	})
}

func (r *Repository) DeleteProject(projectID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		project, err := ownedProject(tx, projectID, userID)
		if err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
}

// ownedProject - проверка доступа: сначала существование (ErrNotFound), затем владелец (ErrForbidden)
func ownedProject(db *gorm.DB, projectID, userID uint) (*ds.Project, error) {
	var project ds.Project
	err := db.First(&project, projectID).Error
	if err != nil {
		return nil, notFound(err)
	}
	if !project.OwnedBy(userID) {
		return nil, ErrForbidden
	}
	return &project, nil
}
