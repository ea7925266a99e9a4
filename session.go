package stocktrack

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"stocktrack/kv"
)

// KeyCurrentUser holds the session collaborator's current-user value.
const KeyCurrentUser = "currentUser"

// RoleAdmin is the only role allowed to record stock in.
const RoleAdmin = "admin"

// User is the current-user value supplied by the session collaborator.
type User struct {
	Username string `msgpack:"username"`
	Role     string `msgpack:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SessionSource supplies the current user. A nil user with a nil error
// means nobody is signed in.
type SessionSource interface {
	CurrentUser() (*User, error)
}

// KVSession reads the current user from the kv store, where the external
// auth collaborator (the CLI login command here) leaves it.
type KVSession struct {
	kv kv.Store
}

func NewKVSession(backend kv.Store) *KVSession {
	return &KVSession{kv: backend}
}

func (s *KVSession) CurrentUser() (*User, error) {
	raw, err := s.kv.Get(KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyCurrentUser, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var u User
	if err := msgpack.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyCurrentUser, err)
	}
	return &u, nil
}

// SignIn records u as the current user.
func (s *KVSession) SignIn(u User) error {
	raw, err := msgpack.Marshal(u)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyCurrentUser, raw)
}

// SignOut clears the current user.
func (s *KVSession) SignOut() error {
	return s.kv.Delete(KeyCurrentUser)
}
