package tests

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IvanChernomyrdin/go-marketplace-client/internal/client/observable"
)

func TestValue_Subscribe_ReplaysLatest(t *testing.T) {
	v := observable.New(1)
	v.Set(2)

	var got []int
	unsub := v.Subscribe(func(x int) { got = append(got, x) })
	defer unsub()

	assert.Equal(t, []int{2}, got)
}

func TestValue_Set_NotifiesAllInOrder(t *testing.T) {
	v := observable.New("")

	var order []string
	v.Subscribe(func(s string) { order = append(order, "a:"+s) })
	v.Subscribe(func(s string) { order = append(order, "b:"+s) })

	v.Set("x")

	assert.Equal(t, []string{"a:", "b:", "a:x", "b:x"}, order)
	assert.Equal(t, "x", v.Get())
}

func TestValue_Unsubscribe_StopsNotifications(t *testing.T) {
	v := observable.New(0)

	calls := 0
	unsub := v.Subscribe(func(int) { calls++ })
	unsub()
	unsub() // повторная отписка безопасна

	v.Set(5)
	assert.Equal(t, 1, calls) // только replay при подписке
	assert.Equal(t, 0, v.Subscribers())
}

func TestValue_CallbackMayReadValue(t *testing.T) {
	v := observable.New(0)

	var seen int
	v.Subscribe(func(int) { seen = v.Get() })
	v.Set(7)

	assert.Equal(t, 7, seen)
}

func TestValue_ConcurrentSetAndSubscribe(t *testing.T) {
	v := observable.New(0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			v.Set(i)
		}(i)
		go func() {
			defer wg.Done()
			unsub := v.Subscribe(func(int) {})
			unsub()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, v.Subscribers())
}

func TestValue_ConcurrentSubscribe_EndsWithLatest(t *testing.T) {
	for round := 0; round < 50; round++ {
		v := observable.New(0)

		var mu sync.Mutex
		last := -1
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			v.Subscribe(func(x int) {
				mu.Lock()
				last = x
				mu.Unlock()
			})
		}()
		go func() {
			defer wg.Done()
			v.Set(1)
		}()
		wg.Wait()

		// replay до Set или после, но последним приходит 1
		mu.Lock()
		got := last
		mu.Unlock()
		assert.Equal(t, 1, got, "round %d", round)
	}
}
