package service

import (
	"errors"
	"log"

	"github.com/fabiobedeschi/iiot-userservice/pkg/models"
	"github.com/fabiobedeschi/iiot-userservice/pkg/repository"
)

// UserRepository is the persistence contract the coordinator needs.
type UserRepository interface {
	FindUser(id string) (*models.User, error)
	FindAllUsers() ([]models.User, error)
	FindUsersByArea(area string) ([]models.User, error)
	InsertUser(id string, delta int64, area string) (*models.User, error)
	UpdateUser(id string, delta *int64, area *string) (*models.User, string, error)
	DeleteUser(id string) (*models.User, error)
}

// Publisher defines the interface for publishing events. Fire-and-forget:
// the coordinator logs a failed publish and moves on, the committed
// mutation stands.
type Publisher interface {
	Publish(topic string, event models.Event) error
}

// UserService coordinates user mutations: every change is persisted
// through the repository and then announced on the topic named after the
// user's area. An update that moves a user between areas is announced as
// a delete on the old topic followed by a create on the new one, in that
// order, so a consumer observing only the delete never double-counts.
type UserService struct {
	repo        UserRepository
	pub         Publisher
	sendUpdates bool
}

// NewUserService creates a coordinator over repo and pub. With
// sendUpdates false no events are emitted at all.
func NewUserService(repo UserRepository, pub Publisher, sendUpdates bool) *UserService {
	return &UserService{repo: repo, pub: pub, sendUpdates: sendUpdates}
}

// FindAllUsers lists users, optionally restricted to one area. An empty
// result is a successful empty collection, not a not-found.
func (s *UserService) FindAllUsers(area string) ([]models.User, error) {
	if area != "" {
		return s.repo.FindUsersByArea(area)
	}
	return s.repo.FindAllUsers()
}

// FindUser returns the user with the given id.
func (s *UserService) FindUser(id string) (*models.User, error) {
	return s.repo.FindUser(id)
}

// CreateUser inserts a new user and announces it with a create event on
// the user's area topic. Returns repository.ErrConflict if the id is
// already taken.
func (s *UserService) CreateUser(id string, delta *int64, area *string) (*models.User, error) {
	if _, err := s.repo.FindUser(id); err == nil {
		return nil, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	var d int64
	if delta != nil {
		d = *delta
	}
	var a string
	if area != nil {
		a = *area
	}

	user, err := s.repo.InsertUser(id, d, a)
	if err != nil {
		return nil, err
	}

	s.publish(user.Area, models.SnapshotEvent(models.ActionCreate, *user))
	return user, nil
}

// UpdateUser applies a partial update. A non-nil delta adjusts the
// stored delta relatively; a non-nil area reassigns the user. If the
// update changed a previously assigned area, two events are emitted in
// fixed order: a delete reference on the old topic, then a create
// snapshot on the new one. Otherwise a single update snapshot goes to
// the user's topic.
func (s *UserService) UpdateUser(id string, delta *int64, area *string) (*models.User, error) {
	user, previousArea, err := s.repo.UpdateUser(id, delta, area)
	if err != nil {
		return nil, err
	}

	if previousArea != "" && previousArea != user.Area {
		s.publish(previousArea, models.ReferenceEvent(models.ActionDelete, user.ID))
		s.publish(user.Area, models.SnapshotEvent(models.ActionCreate, *user))
	} else {
		s.publish(user.Area, models.SnapshotEvent(models.ActionUpdate, *user))
	}
	return user, nil
}

// DeleteUser removes the user and announces a delete reference on the
// area the user occupied at the time of deletion.
func (s *UserService) DeleteUser(id string) (*models.User, error) {
	if _, err := s.repo.FindUser(id); err != nil {
		return nil, err
	}

	user, err := s.repo.DeleteUser(id)
	if err != nil {
		return nil, err
	}

	s.publish(user.Area, models.ReferenceEvent(models.ActionDelete, user.ID))
	return user, nil
}

func (s *UserService) publish(topic string, event models.Event) {
	if !s.sendUpdates {
		return
	}
	if err := s.pub.Publish(topic, event); err != nil {
		// Best effort: the mutation is already committed, a dropped
		// message heals on the next mutation of the same user.
		log.Printf("[Service] Failed to publish %s event for user %s on topic %q: %v",
			event.Action, event.User.ID, topic, err)
	}
}
