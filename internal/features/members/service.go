// Package members — service.go содержит бизнес-логику управления участниками.
package members

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"streak-bot/internal/common"
)

// Store — то, что сервису нужно от хранилища. *Repository его реализует.
type Store interface {
	Upsert(ctx context.Context, m *Member) error
	GetByUserID(ctx context.Context, userID int64) (*Member, error)
	UpdateTimezone(ctx context.Context, userID int64, zone string) error
	Count(ctx context.Context) (int64, error)
}

// Service управляет пользователями и их зонами.
type Service struct {
	repo        Store
	defaultZone string // APP_TIMEZONE, зона новых пользователей
}

// NewService создаёт новый сервис участников.
func NewService(repo Store, defaultZone string) *Service {
	return &Service{repo: repo, defaultZone: defaultZone}
}

// EnsureMember гарантирует, что пользователь есть в базе, и обновляет имя.
// Новые пользователи получают зону по умолчанию.
func (s *Service) EnsureMember(ctx context.Context, userID int64, username, firstName, lastName string) error {
	m := &Member{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Timezone:  s.defaultZone,
	}
	if err := s.repo.Upsert(ctx, m); err != nil {
		return fmt.Errorf("ошибка регистрации участника: %w", err)
	}
	return nil
}

// Get возвращает пользователя по Telegram user ID.
func (s *Service) Get(ctx context.Context, userID int64) (*Member, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Location возвращает зону пользователя. Если пользователя нет,
// используется зона по умолчанию.
func (s *Service) Location(ctx context.Context, userID int64) (string, *time.Location, error) {
	zone := s.defaultZone
	m, err := s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		zone = m.Timezone
	case !errors.Is(err, common.ErrUserNotFound):
		return "", nil, err
	}
	loc, ok := common.LoadLocation(zone)
	if !ok {
		log.WithFields(log.Fields{"user_id": userID, "zone": zone}).Warn("Зона пользователя не загрузилась, используем UTC+2")
	}
	return zone, loc, nil
}

// SetTimezone сохраняет IANA-зону пользователя. Неизвестные зоны отклоняются
// с common.ErrInvalidTimezone.
func (s *Service) SetTimezone(ctx context.Context, userID int64, zone string) error {
	zone = strings.TrimSpace(zone)
	if zone == "" || strings.EqualFold(zone, "local") {
		return fmt.Errorf("%w: %q", common.ErrInvalidTimezone, zone)
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidTimezone, zone)
	}
	if err := s.repo.UpdateTimezone(ctx, userID, zone); err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "zone": zone}).Info("Зона пользователя изменена")
	return nil
}

// Count — число пользователей.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
