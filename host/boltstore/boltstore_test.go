// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package boltstore

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/borealis-network/borealis/borealis"
	"github.com/borealis-network/borealis/host/memstore"
	"github.com/borealis-network/borealis/state"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestStore_ValuesSurviveReopening(t *testing.T) {
	store, path := openTestStore(t)

	err := store.Update(func(storage borealis.HostStorage) error {
		storage.Set([]byte("key"), []byte("value"))
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	err = reopened.View(func(storage borealis.HostStorage) error {
		require.Equal(t, []byte("value"), storage.Get([]byte("key")))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_MissingKeysReadAsNil(t *testing.T) {
	store, _ := openTestStore(t)
	err := store.View(func(storage borealis.HostStorage) error {
		require.Nil(t, storage.Get([]byte("missing")))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_FailedUpdateIsRolledBack(t *testing.T) {
	store, _ := openTestStore(t)

	failure := fmt.Errorf("synthetic failure")
	err := store.Update(func(storage borealis.HostStorage) error {
		storage.Set([]byte("key"), []byte("value"))
		return failure
	})
	require.ErrorIs(t, err, failure)

	err = store.View(func(storage borealis.HostStorage) error {
		require.Nil(t, storage.Get([]byte("key")))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_WritesInViewTransactionsFail(t *testing.T) {
	store, _ := openTestStore(t)
	err := store.View(func(storage borealis.HostStorage) error {
		storage.Set([]byte("key"), []byte("value"))
		return nil
	})
	require.Error(t, err)
}

func TestStore_DeletePrefixRemovesOnlyMatchingKeys(t *testing.T) {
	store, _ := openTestStore(t)

	err := store.Update(func(storage borealis.HostStorage) error {
		storage.Set([]byte("a:1"), []byte("x"))
		storage.Set([]byte("a:2"), []byte("y"))
		storage.Set([]byte("b:1"), []byte("z"))
		return nil
	})
	require.NoError(t, err)

	err = store.Update(func(storage borealis.HostStorage) error {
		storage.DeletePrefix([]byte("a:"))
		return nil
	})
	require.NoError(t, err)

	err = store.View(func(storage borealis.HostStorage) error {
		require.Nil(t, storage.Get([]byte("a:1")))
		require.Nil(t, storage.Get([]byte("a:2")))
		require.Equal(t, []byte("z"), storage.Get([]byte("b:1")))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ReturnedValuesAreDetachedFromTheDatabase(t *testing.T) {
	store, _ := openTestStore(t)

	err := store.Update(func(storage borealis.HostStorage) error {
		storage.Set([]byte("key"), []byte{1, 2, 3})
		return nil
	})
	require.NoError(t, err)

	err = store.Update(func(storage borealis.HostStorage) error {
		value := storage.Get([]byte("key"))
		value[0] = 99
		require.Equal(t, []byte{1, 2, 3}, storage.Get([]byte("key")))
		return nil
	})
	require.NoError(t, err)
}

func TestStore_BacksTheAccountStateLayer(t *testing.T) {
	store, path := openTestStore(t)
	runtime := memstore.New()
	account := borealis.Address{0x01}

	err := store.Update(func(storage borealis.HostStorage) error {
		stateDB := state.NewStateDB(storage, runtime)
		stateDB.SetBalance(account, borealis.NewValue(42))
		stateDB.SetNonce(account, 7)
		return stateDB.Commit()
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	err = reopened.View(func(storage borealis.HostStorage) error {
		stateDB := state.NewStateDB(storage, runtime)
		require.Equal(t, borealis.NewValue(42), stateDB.GetBalance(account))
		require.Equal(t, uint64(7), stateDB.GetNonce(account))
		return nil
	})
	require.NoError(t, err)
}
