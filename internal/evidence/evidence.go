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

// Package evidence provides the small, shared read primitives every
// detector builds on: trimmed file reads, permission-aware symlink reads,
// numeric /proc entry enumeration, and per-pid mount tables. Each primitive
// follows the universal tie-break rules: absent evidence is not an error,
// permission-denied on an individual record is a skip, not a failure.
package evidence

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/moby/sys/mountinfo"
)

// ReadTrimmed reads a file and returns its contents with surrounding
// whitespace trimmed. ok is false when the file does not exist; err is
// non-nil for any other read failure (including permission-denied, which
// callers should usually treat as a skip rather than propagate).
func ReadTrimmed(path string) (content string, ok bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(string(b)), true, nil
}

// ReadSymlink reads the target of a symlink. ok is false when the link does
// not exist. Permission-denied is reported via err so callers can apply the
// per-record skip policy themselves (some detectors treat it as "no
// determination for this pid", others substitute a sentinel value).
func ReadSymlink(path string) (target string, ok bool, err error) {
	target, err = os.Readlink(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return target, true, nil
}

// IsPermissionDenied reports whether err represents a permission-denied
// failure, the condition every detector must treat as a silent per-record
// skip rather than an escalation to Error.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// IsNotExist reports whether err represents an absent evidence source, the
// condition every detector must treat as Clean rather than Error.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// ProcPIDs enumerates the numeric entries directly under /proc, i.e. the
// set of live process IDs visible to the caller.
func ProcPIDs() ([]int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, err
	}
	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids, nil
}

// StatInfo is the subset of file metadata ghostscan's ownership/permission
// checks need, independent of the os.FileInfo interface so callers can
// build one from other sources (e.g. tests) without touching a real file.
type StatInfo struct {
	Mode fs.FileMode
	UID  uint32
}

// Stat reads a path's mode and owning uid. ok is false when the path does
// not exist.
func Stat(path string) (info StatInfo, ok bool, err error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StatInfo{}, false, nil
		}
		return StatInfo{}, false, err
	}
	sys, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return StatInfo{Mode: fi.Mode()}, true, nil
	}
	return StatInfo{Mode: fi.Mode(), UID: sys.Uid}, true, nil
}

// MountTable maps a kernel mount ID to its mount point, built from a single
// pid's mountinfo. Later lines for a repeated mount ID overwrite earlier
// ones, matching kernel mountinfo ordering.
type MountTable map[uint64]string

// BuildMountTable parses /proc/<pid>/mountinfo into a MountTable using
// moby/sys/mountinfo's tolerant line parser (field 0 = mount ID, field 4 =
// mount point, exactly as specified). Failure to read the file is fatal for
// that pid's scan; the outer detector may still report findings for other
// pids.
func BuildMountTable(pid int) (MountTable, error) {
	path := filepath.Join("/proc", strconv.Itoa(pid), "mountinfo")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseMountinfoReader(f)
}

func parseMountinfoReader(r io.Reader) (MountTable, error) {
	infos, err := mountinfo.GetMountsFromReader(r, nil)
	if err != nil {
		return nil, err
	}

	table := make(MountTable, len(infos))
	for _, info := range infos {
		table[uint64(info.ID)] = info.Mountpoint
	}
	return table, nil
}
