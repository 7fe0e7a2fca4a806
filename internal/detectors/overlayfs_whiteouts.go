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

package detectors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/mountinfo"
	"github.com/pkg/xattr"

	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// OverlayfsWhiteouts flags an overlay mount whose upperdir has a
// character-device whiteout file directly at its root, or whose upperdir
// root itself carries the opaque-directory xattr — both are legitimate
// overlay mechanics, but one sitting unexplained at the very top of an
// upperdir is also how a rootkit hides an entire directory tree from the
// merged view.
func OverlayfsWhiteouts() scanner.Outcome {
	mounts, err := mountinfo.GetMounts(func(info *mountinfo.Info) (bool, bool) {
		return info.FSType != "overlay", false
	})
	if err != nil {
		return scanner.Err(fmt.Sprintf("failed to read mountinfo: %v", err))
	}
	if len(mounts) == 0 {
		return scanner.Clean()
	}

	var findings []string
	var errs []string
	for _, m := range mounts {
		upperdir := overlayOptionValue(m.VFSOptions, "upperdir")
		if upperdir == "" {
			continue
		}

		entries, err := os.ReadDir(upperdir)
		if err != nil {
			if os.IsPermission(err) || os.IsNotExist(err) {
				continue
			}
			errs = append(errs, fmt.Sprintf("%s: %v", upperdir, err))
			continue
		}

		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if info.Mode()&os.ModeCharDevice == 0 {
				continue
			}
			path := filepath.Join(upperdir, entry.Name())
			findings = append(findings, fmt.Sprintf("upperdir=%s path=%s issues=whiteout_at_root", upperdir, path))
		}

		if hasOpaqueXattr(upperdir) {
			findings = append(findings, fmt.Sprintf("upperdir=%s path=%s issues=opaque_dir_marker", upperdir, upperdir))
		}
	}

	return scanner.Resolve(findings, errs)
}

func overlayOptionValue(vfsOptions, key string) string {
	for _, opt := range strings.Split(vfsOptions, ",") {
		if value, found := strings.CutPrefix(opt, key+"="); found {
			return value
		}
	}
	return ""
}

// hasOpaqueXattr reads the overlay opaque-directory marker best-effort;
// an unsupported or absent xattr is not an error, since most directories
// never set it.
func hasOpaqueXattr(path string) bool {
	value, err := xattr.Get(path, "trusted.overlay.opaque")
	if err != nil {
		return false
	}
	return string(value) == "y"
}
