package repository

import (
	"time"

	"go-retail-inventory/internal/model"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	FindByToken(token string) (*model.Session, error)
	DeleteByToken(token string) error
	DeleteByUserID(userID uint) error
	DeleteExpired() error
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db}
}

func (r *sessionRepo) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepo) FindByToken(token string) (*model.Session, error) {
	var session model.Session
	if err := r.db.Preload("User").Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&model.Session{}).Error
}

// DeleteByUserID revokes every live session for a user (password change).
func (r *sessionRepo) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Session{}).Error
}

func (r *sessionRepo) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&model.Session{}).Error
}
