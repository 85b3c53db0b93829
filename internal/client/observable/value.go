// Package observable содержит ячейку значения с подписчиками (replay-last).
//
// Подписчик сразу получает последнее известное значение, а затем синхронно
// уведомляется при каждом Set в порядке подписки.
package observable

import "sync"

// Value — потокобезопасная ячейка значения типа T.
//
// Доставка (Set и replay в Subscribe) сериализована через notify, поэтому
// последним каждый подписчик получает последнее значение.
type Value[T any] struct {
	notify sync.Mutex // порядок доставки
	mu     sync.Mutex // value, subs
	value  T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// New создаёт ячейку с начальным значением.
func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get возвращает текущее значение.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set сохраняет значение и синхронно уведомляет всех подписчиков.
//
// Колбэки вызываются вне mu: внутри них можно вызывать Get и отписку,
// но не Set.
func (v *Value[T]) Set(value T) {
	v.notify.Lock()
	defer v.notify.Unlock()

	v.mu.Lock()
	v.value = value
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(value)
	}
}

// Subscribe регистрирует fn и сразу вызывает его с текущим значением.
//
// Возвращает функцию отписки; повторный вызов отписки безопасен.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.notify.Lock()
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	current := v.value
	v.mu.Unlock()

	fn(current)
	v.notify.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers возвращает число активных подписчиков.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}
