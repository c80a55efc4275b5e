package mystore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	UID  string
	Name string
	Age  int
}

func TestInMemoryStore(t *testing.T) {
	c := context.TODO()

	t.Run("Put and get", func(t *testing.T) {
		store, cleanup, err := NewInMemoryStore[person](c)
		assert.NoError(t, err)
		defer cleanup()

		err = store.Put(c, "1", person{UID: "1", Name: "Marc", Age: 52})
		assert.NoError(t, err)

		got, found, err := store.Get(c, "1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Marc", got.Name)
	})

	t.Run("Get not exists", func(t *testing.T) {
		store, cleanup, _ := NewInMemoryStore[person](c)
		defer cleanup()

		_, found, err := store.Get(c, "1")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("List", func(t *testing.T) {
		store, cleanup, _ := NewInMemoryStore[person](c)
		defer cleanup()

		store.Put(c, "1", person{UID: "1", Name: "Marc"})
		store.Put(c, "2", person{UID: "2", Name: "Eva"})

		got, err := store.List(c)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Transaction commit", func(t *testing.T) {
		store, cleanup, _ := NewInMemoryStore[person](c)
		defer cleanup()

		err := store.RunInTransaction(c, func(c context.Context) error {
			return store.Put(c, "1", person{UID: "1", Name: "Marc"})
		})
		assert.NoError(t, err)

		_, found, _ := store.Get(c, "1")
		assert.True(t, found)
	})

	t.Run("Transaction error bubbles up", func(t *testing.T) {
		store, cleanup, _ := NewInMemoryStore[person](c)
		defer cleanup()

		err := store.RunInTransaction(c, func(c context.Context) error {
			return fmt.Errorf("boom")
		})
		assert.Error(t, err)
	})
}
