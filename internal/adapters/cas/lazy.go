package cas

import (
	"sync"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/squeeze/internal/core/ports"
)

var _ ports.BuildInfoStore = (*LazyStore)(nil)

// LazyStore opens the backing Store on first use, once the home directory is
// known.
type LazyStore struct {
	path func() (string, error)

	once  sync.Once
	store *Store
	err   error
}

// NewLazyStore creates a LazyStore whose file is given by path.
func NewLazyStore(path func() (string, error)) *LazyStore {
	return &LazyStore{path: path}
}

func (l *LazyStore) open() (*Store, error) {
	l.once.Do(func() {
		path, err := l.path()
		if err != nil {
			l.err = err
			return
		}
		l.store, l.err = NewStore(path)
	})
	return l.store, l.err
}

// Get implements ports.BuildInfoStore.
func (l *LazyStore) Get(output string) (*domain.BuildInfo, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.Get(output)
}

// Put implements ports.BuildInfoStore.
func (l *LazyStore) Put(info domain.BuildInfo) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Put(info)
}
