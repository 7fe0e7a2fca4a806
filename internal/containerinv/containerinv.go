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

// Package containerinv collects an inventory of container runtime state by
// walking a fixed set of runtime state roots for state.json documents. It
// is called afresh by every detector that needs it; there is no shared
// cache, keeping detectors fully independent per the concurrency model.
package containerinv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/tidwall/gjson"

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/diriterate"
)

// Mount is the subset of an OCI-style state.json mount entry ghostscan
// cares about. Fields absent in the source JSON default to their zero
// value.
type Mount struct {
	Destination string
	Source      string
	Options     []string
}

// State is the subset of an OCI-style state.json document ghostscan cares
// about. A missing "id" defaults to the absolute path of the state file so
// collection errors can still be correlated back to a container.
type State struct {
	ID     string
	PID    *uint32
	Mounts []Mount
}

// Inventory is the result of a single collection pass: the parsed states
// plus a parallel list of per-path collection errors. It is produced fresh
// per caller and never mutated after return.
type Inventory struct {
	States []State
	Errors []string
}

// Collect walks the fixed container runtime roots, bounded by limit
// directory-entry visits per root, and returns every state.json document it
// can parse.
func Collect(limit int) Inventory {
	var inv Inventory
	var files []string

	for _, root := range config.ContainerStateRoots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		findStateFiles(root, limit, &files, &inv.Errors)
	}

	sort.Strings(files)
	files = dedupe(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			inv.Errors = append(inv.Errors, fmt.Sprintf("failed to read %s: %v", file, err))
			continue
		}
		if !gjson.ValidBytes(content) {
			inv.Errors = append(inv.Errors, fmt.Sprintf("failed to parse %s: invalid JSON", file))
			continue
		}
		inv.States = append(inv.States, parseState(file, content))
	}

	return inv
}

// ContainerRoots returns the set of host-side source paths for every
// container mount whose destination is "/" — i.e. the overlay/merged root
// of each running container, used by detectors like fanotify_watchers to
// recognize container filesystems.
func ContainerRoots(limit int) []string {
	inv := Collect(limit)
	var roots []string
	for _, state := range inv.States {
		for _, mount := range state.Mounts {
			if mount.Destination == "/" && mount.Source != "" {
				roots = append(roots, mount.Source)
			}
		}
	}
	return roots
}

func parseState(file string, content []byte) State {
	root := gjson.ParseBytes(content)

	id := root.Get("id").String()
	if id == "" {
		id = file
	}

	var pid *uint32
	if p := root.Get("pid"); p.Exists() {
		v := uint32(p.Uint())
		pid = &v
	}

	var mounts []Mount
	for _, m := range root.Get("mounts").Array() {
		mount := Mount{Destination: m.Get("destination").String()}
		if src := m.Get("source"); src.Exists() {
			mount.Source = src.String()
		}
		for _, opt := range m.Get("options").Array() {
			mount.Options = append(mount.Options, opt.String())
		}
		mounts = append(mounts, mount)
	}

	return State{ID: id, PID: pid, Mounts: mounts}
}

func findStateFiles(root string, limit int, files *[]string, errs *[]string) {
	type queued struct{ path string }
	queue := []queued{{path: root}}
	visited := 0
	truncated := false

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		if visited >= limit {
			truncated = true
			break
		}
		visited++

		it, err := diriterate.ReadDir(dir.path)
		if err != nil {
			if isSkippableDirError(err) {
				continue
			}
			*errs = append(*errs, fmt.Sprintf("failed to read %s: %v", dir.path, err))
			continue
		}

		for {
			entry, err := it.Next()
			if err != nil {
				if err != io.EOF {
					*errs = append(*errs, fmt.Sprintf("failed to iterate %s: %v", dir.path, err))
				}
				break
			}

			path := filepath.Join(dir.path, entry.Name())
			if entry.IsDir() {
				if strings.HasPrefix(entry.Name(), ".") {
					continue
				}
				queue = append(queue, queued{path: path})
			} else if entry.Name() == "state.json" {
				*files = append(*files, path)
			}
		}
		it.Close()
	}

	if truncated {
		*errs = append(*errs, fmt.Sprintf("container state search truncated at %d entries under %s", limit, root))
	}
}

// isSkippableDirError matches permission-denied (EACCES) and stale-handle
// (ESTALE) readdir failures, both of which are silently skipped per spec.
func isSkippableDirError(err error) bool {
	if os.IsPermission(err) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EACCES || errno == syscall.ESTALE
	}
	return false
}

func dedupe(files []string) []string {
	out := files[:0]
	var prev string
	for i, f := range files {
		if i == 0 || f != prev {
			out = append(out, f)
		}
		prev = f
	}
	return out
}
