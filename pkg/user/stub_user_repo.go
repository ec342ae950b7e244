package user

import (
	"context"

	"github.com/google/uuid"
)

type StubUserRepository struct {
	data map[string]User
}

func NewStubUserRepository() *StubUserRepository {
	return &StubUserRepository{data: map[string]User{}}
}

func (s *StubUserRepository) CreateUser(ctx context.Context, user User) (string, error) {
	id := uuid.NewString()
	user.Id = id
	s.data[id] = user
	return id, nil
}

func (s *StubUserRepository) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepository) UpdateUser(ctx context.Context, userId string, user User) (User, error) {
	if _, ok := s.data[userId]; !ok {
		return User{}, ErrUserNotFound
	}
	user.Id = userId
	s.data[userId] = user
	return user, nil
}

func (s *StubUserRepository) DeleteUser(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *StubUserRepository) GetAllUsers(ctx context.Context) ([]User, error) {
	var users []User
	for _, user := range s.data {
		users = append(users, user)
	}
	return users, nil
}

func (s *StubUserRepository) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	for _, user := range s.data {
		if user.Username == username {
			return false, nil
		}
	}
	return true, nil
}
