package store

import (
	"github.com/umalmyha/fieldops/internal/bus"
	"github.com/umalmyha/fieldops/internal/model"
)

// Notifications returns all notifications in creation order
func (s *Store) Notifications() []model.Notification {
	return s.notifications.all()
}

// UnreadNotificationCount returns number of notifications not marked as read
func (s *Store) UnreadNotificationCount() int {
	return s.unreadCount.get()
}

// AddNotification validates and stores new unread notification
func (s *Store) AddNotification(nn model.NewNotification) (model.Notification, error) {
	s.mustNotDeliver()

	if err := s.validate(nn); err != nil {
		return model.Notification{}, err
	}

	n := model.Notification{
		ID:        s.newID(),
		Title:     nn.Title,
		Message:   nn.Message,
		Type:      nn.Type,
		CreatedAt: s.now(),
	}
	s.notifications.insert(n.ID, n)

	s.commit(bus.Notifications)
	return n, nil
}

// MarkNotificationRead marks notification with id as read, already read notification is left as is
func (s *Store) MarkNotificationRead(id string) error {
	s.mustNotDeliver()

	n, ok := s.notifications.get(id)
	if !ok {
		return notFound(entityNotification, id)
	}

	if n.Read {
		return nil
	}

	n.Read = true
	s.notifications.replace(id, n)

	s.commit(bus.Notifications)
	return nil
}

// MarkAllNotificationsRead marks every notification as read
func (s *Store) MarkAllNotificationsRead() {
	s.mustNotDeliver()

	changed := s.notifications.update(func(n model.Notification) (model.Notification, bool) {
		if n.Read {
			return n, false
		}
		n.Read = true
		return n, true
	})

	if changed > 0 {
		s.commit(bus.Notifications)
	}
}

// DeleteNotification removes notification with id
func (s *Store) DeleteNotification(id string) error {
	s.mustNotDeliver()

	if !s.notifications.remove(id) {
		return notFound(entityNotification, id)
	}

	s.commit(bus.Notifications)
	return nil
}
