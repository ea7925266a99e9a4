package stocktrack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack"
	"stocktrack/kv"
)

func TestKVSession(t *testing.T) {
	backend := kv.NewMemory()
	session := stocktrack.NewKVSession(backend)

	user, err := session.CurrentUser()
	require.NoError(t, err)
	assert.Nil(t, user, "nobody signed in")

	require.NoError(t, session.SignIn(stocktrack.User{Username: "alice", Role: "admin"}))
	user, err = session.CurrentUser()
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsAdmin())

	require.NoError(t, session.SignIn(stocktrack.User{Username: "bob", Role: "staff"}))
	user, err = session.CurrentUser()
	require.NoError(t, err)
	assert.False(t, user.IsAdmin())

	require.NoError(t, session.SignOut())
	user, err = session.CurrentUser()
	require.NoError(t, err)
	assert.Nil(t, user)
}
