// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diriterate iterates over the contents of a directory one entry at
// a time, without loading the whole listing into memory. The container
// inventory collector's bounded BFS relies on this to cap work per root
// without paying for a full readdir of directories it never finishes
// visiting.
package diriterate

import (
	"io"
	"io/fs"
	"os"
)

// ReadDir opens name and returns an iterator over its entries.
func ReadDir(name string) (*DirIterator, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &DirIterator{dir: file}, nil
}

// DirIterator iterates over directory entries one at a time.
type DirIterator struct {
	dir *os.File
}

// Next returns the next fs.DirEntry. When the directory is exhausted it
// returns io.EOF.
func (i *DirIterator) Next() (fs.DirEntry, error) {
	entries, err := i.dir.ReadDir(1)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	return entries[0], nil
}

// Close closes the underlying directory handle.
func (i *DirIterator) Close() error {
	return i.dir.Close()
}
