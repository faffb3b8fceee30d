package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"swapnstay/internal/repos"
)

var errDown = errors.New("store unreachable")

// fakeStore is an in-memory DocumentStore with failure injection.
type fakeStore struct {
	mu   sync.Mutex
	docs []repos.Document
	next int
	now  time.Time

	failList, failAdd, failDelete bool

	adds, deletes, lists int
	deleted              []string

	// addGate, when set, blocks Add until it is closed.
	addGate chan struct{}
	// blockList makes List wait for ctx cancellation.
	blockList bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	f.mu.Lock()
	gate := f.addGate
	f.adds++
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdd {
		return "", errDown
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	f.next++
	f.now = f.now.Add(time.Minute)
	id := fmt.Sprintf("p%d", f.next)
	f.docs = append(f.docs, repos.Document{Collection: collection, ID: id, CreatedAt: f.now, Data: b})
	return id, nil
}

func (f *fakeStore) Set(ctx context.Context, collection, id string, doc any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	for i, d := range f.docs {
		if d.Collection == collection && d.ID == id {
			f.docs[i].Data = b
			return nil
		}
	}
	f.now = f.now.Add(time.Minute)
	f.docs = append(f.docs, repos.Document{Collection: collection, ID: id, CreatedAt: f.now, Data: b})
	return nil
}

func (f *fakeStore) Get(ctx context.Context, collection, id string) (repos.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.docs {
		if d.Collection == collection && d.ID == id {
			return d, nil
		}
	}
	return repos.Document{}, repos.ErrNotFound
}

func (f *fakeStore) List(ctx context.Context, collection string) ([]repos.Document, error) {
	f.mu.Lock()
	f.lists++
	block, fail := f.blockList, f.failList
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if fail {
		return nil, errDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repos.Document
	for i := len(f.docs) - 1; i >= 0; i-- {
		if f.docs[i].Collection == collection {
			out = append(out, f.docs[i])
		}
	}
	return out, nil
}

func (f *fakeStore) Delete(ctx context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.deleted = append(f.deleted, id)
	if f.failDelete {
		return errDown
	}
	for i, d := range f.docs {
		if d.Collection == collection && d.ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			break
		}
	}
	return nil
}

// seed writes a raw product body directly, bypassing the repository.
func (f *fakeStore) seed(body map[string]any) string {
	id, err := f.Add(context.Background(), repos.Products, body)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	f.adds--
	f.mu.Unlock()
	return id
}

func (f *fakeStore) set(fn func(f *fakeStore)) {
	f.mu.Lock()
	fn(f)
	f.mu.Unlock()
}
