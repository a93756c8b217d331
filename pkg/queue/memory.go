package queue

import (
	"fmt"
	"sync"
)

// InMemoryQueue implements an in-memory queue.
type InMemoryQueue struct {
	items []interface{}
	size  int
	lock  sync.Mutex
}

// NewInMemoryQueue creates a new queue holding at most size items.
func NewInMemoryQueue(size int) *InMemoryQueue {
	return &InMemoryQueue{
		items: make([]interface{}, 0, size),
		size:  size,
	}
}

// Enqueue adds an item to the end of the queue.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.items) >= q.size {
		return fmt.Errorf("queue is full")
	}
	q.items = append(q.items, item)
	return nil
}

// ReadAllMessages drains the queue and returns all pending items in order.
func (q *InMemoryQueue) ReadAllMessages() ([]interface{}, error) {
	q.lock.Lock()
	defer q.lock.Unlock()
	items := q.items
	q.items = make([]interface{}, 0, q.size)
	return items, nil
}

// Size returns the current size of the queue.
func (q *InMemoryQueue) Size() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items)
}

// Clear removes all items from the queue.
func (q *InMemoryQueue) Clear() {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.items = q.items[:0]
}
