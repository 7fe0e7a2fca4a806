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

// Package procutil provides per-pid triage primitives shared by several
// detectors: comm, exe (with deleted/temporary classification), root, and
// fd/fdinfo enumeration.
package procutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ree4pwn/ghostscan/internal/evidence"
)

// TemporaryPathPrefixes are the directories tradecraft commonly drops
// payloads into; a binary resolving under one of these is suspicious.
var TemporaryPathPrefixes = []string{"/tmp/", "/var/tmp/", "/dev/shm/"}

// Comm reads /proc/<pid>/comm, defaulting to "?" if it cannot be read.
func Comm(pid int) string {
	content, ok, err := evidence.ReadTrimmed(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil || !ok {
		return "?"
	}
	return content
}

// Exe resolves /proc/<pid>/exe, defaulting to "unknown" if it cannot be
// read for any reason other than the process having no exe (kernel
// threads), which returns "" with ok=false.
func Exe(pid int) (path string, ok bool) {
	target, ok, err := evidence.ReadSymlink(fmt.Sprintf("/proc/%d/exe", pid))
	if err != nil {
		return "unknown", true
	}
	if !ok {
		return "", false
	}
	return target, true
}

// Root resolves /proc/<pid>/root, defaulting to "/" if it cannot be read.
func Root(pid int) string {
	target, ok, err := evidence.ReadSymlink(fmt.Sprintf("/proc/%d/root", pid))
	if err != nil || !ok {
		return "/"
	}
	return target
}

// IsDeleted reports whether an exe/library path string carries the kernel's
// "(deleted)" marker for an unlinked backing file.
func IsDeleted(path string) bool {
	return strings.Contains(path, "(deleted)")
}

// IsTemporary reports whether a path resolves under one of the
// TemporaryPathPrefixes commonly used to stage implants.
func IsTemporary(path string) bool {
	for _, prefix := range TemporaryPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ExeIssues classifies an exe path into the standard tag vocabulary:
// exe_deleted and/or exe_temporary. Returns an empty slice if the path is
// unremarkable.
func ExeIssues(path string) []string {
	var issues []string
	if IsDeleted(path) {
		issues = append(issues, "exe_deleted")
	}
	if IsTemporary(path) {
		issues = append(issues, "exe_temporary")
	}
	return issues
}

// FdEntries lists the fd numbers open under /proc/<pid>/fd. A
// permission-denied error is returned as-is so callers can apply the
// per-pid skip policy themselves.
func FdEntries(pid int) ([]os.DirEntry, error) {
	return os.ReadDir(fmt.Sprintf("/proc/%d/fd", pid))
}

// FdTarget reads the symlink target of a single fd entry.
func FdTarget(pid int, fdName string) (string, error) {
	return os.Readlink(filepath.Join("/proc", strconv.Itoa(pid), "fd", fdName))
}

// FdinfoEntries lists the fdinfo files under /proc/<pid>/fdinfo.
func FdinfoEntries(pid int) ([]os.DirEntry, error) {
	return os.ReadDir(fmt.Sprintf("/proc/%d/fdinfo", pid))
}

// FdinfoContent reads a single fdinfo file's content.
func FdinfoContent(pid int, fdName string) (string, error) {
	b, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "fdinfo", fdName))
	return string(b), err
}

// Environ reads /proc/<pid>/environ and splits it on NUL bytes into
// "KEY=VALUE" entries.
func Environ(pid int) ([]string, error) {
	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/environ", pid))
	if err != nil {
		return nil, err
	}
	raw := strings.Split(strings.TrimRight(string(b), "\x00"), "\x00")
	entries := make([]string, 0, len(raw))
	for _, e := range raw {
		if e != "" {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// EnvironValue returns the value of a single key from a process's environ,
// if present.
func EnvironValue(pid int, key string) (string, bool, error) {
	entries, err := Environ(pid)
	if err != nil {
		return "", false, err
	}
	prefix := key + "="
	for _, e := range entries {
		if strings.HasPrefix(e, prefix) {
			return strings.TrimPrefix(e, prefix), true, nil
		}
	}
	return "", false, nil
}

// StatusField reads a single "Key:\tvalue" field from /proc/<pid>/status.
func StatusField(pid int, key string) (string, bool, error) {
	content, ok, err := evidence.ReadTrimmed(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	for _, line := range strings.Split(content, "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.TrimSpace(parts[0]) == key {
			return strings.TrimSpace(parts[1]), true, nil
		}
	}
	return "", false, nil
}

// StatFields splits /proc/<pid>/stat into its whitespace-separated fields,
// correctly skipping over the parenthesized comm field which may itself
// contain spaces.
func StatFields(pid int) ([]string, error) {
	content, ok, err := evidence.ReadTrimmed(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fs.ErrNotExist
	}
	open := strings.IndexByte(content, '(')
	close := strings.LastIndexByte(content, ')')
	if open < 0 || close < 0 || close < open {
		return strings.Fields(content), nil
	}
	pidField := strings.Fields(content[:open])
	rest := strings.Fields(content[close+1:])
	out := make([]string, 0, len(pidField)+1+len(rest))
	out = append(out, pidField...)
	out = append(out, content[open+1:close])
	out = append(out, rest...)
	return out, nil
}
