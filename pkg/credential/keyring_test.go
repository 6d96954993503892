package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(keyring.NewArrayKeyring(nil))

	_, err := store.APIKey()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SetAPIKey("lin_api_123"))

	key, err := store.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_123", key)

	require.NoError(t, store.DeleteAPIKey())
	_, err = store.APIKey()
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.DeleteAPIKey())
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	store := NewStore(keyring.NewArrayKeyring(nil))

	assert.Error(t, store.SetAPIKey(""))
}
