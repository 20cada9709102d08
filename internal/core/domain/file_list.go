package domain

import "slices"

// FileList is an ordered sequence of paths without duplicates. The zero value is ready to use.
type FileList struct {
	paths []string
	index map[string]struct{}
}

// NewFileList returns a list holding the given paths, duplicates dropped.
func NewFileList(paths ...string) *FileList {
	l := &FileList{}
	l.Add(paths...)
	return l
}

// Add appends each path that is not already present. It reports how many were added.
func (l *FileList) Add(paths ...string) int {
	if l.index == nil {
		l.index = make(map[string]struct{})
	}
	added := 0
	for _, p := range paths {
		if _, ok := l.index[p]; ok {
			continue
		}
		l.index[p] = struct{}{}
		l.paths = append(l.paths, p)
		added++
	}
	return added
}

// Contains reports whether path is in the list.
func (l *FileList) Contains(path string) bool {
	_, ok := l.index[path]
	return ok
}

// Len returns the number of paths.
func (l *FileList) Len() int {
	return len(l.paths)
}

// Paths returns a copy of the paths in insertion order.
func (l *FileList) Paths() []string {
	return slices.Clone(l.paths)
}
