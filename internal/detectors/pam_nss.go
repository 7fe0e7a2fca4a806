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

	"github.com/ree4pwn/ghostscan/internal/evidence"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

var pamSearchDirs = []string{
	"/lib/security",
	"/lib/x86_64-linux-gnu/security",
	"/usr/lib/x86_64-linux-gnu/security",
}

var nssSearchDirs = []string{"/lib/x86_64-linux-gnu"}

// PamNss flags a PAM module or NSS library that resolves outside the
// known system search directories — PAM/NSS are loaded into every
// authenticating process, making a module planted off the usual path a
// durable, almost invisible way to intercept credentials.
//
// Only module references that carry a directory component are checked
// (see resolveModule). NSS libraries are always looked up by bare name,
// so the nsswitch.conf half never produces a finding.
func PamNss() scanner.Outcome {
	var findings []string
	var errs []string

	pamModules, err := collectPamModuleNames()
	if err != nil {
		errs = append(errs, fmt.Sprintf("pam.d: %v", err))
	}
	for _, mod := range pamModules {
		if path, ok := resolveModule(mod, pamSearchDirs); ok {
			findings = append(findings, fmt.Sprintf("module=%s resolved=%s issues=non_system_module_path", mod, path))
		}
	}

	nssModules, err := collectNsswitchModuleNames()
	if err != nil {
		errs = append(errs, fmt.Sprintf("nsswitch.conf: %v", err))
	}
	for _, mod := range nssModules {
		if path, ok := resolveModule("libnss_"+mod+".so.2", nssSearchDirs); ok {
			findings = append(findings, fmt.Sprintf("module=%s resolved=%s issues=non_system_module_path", mod, path))
		}
	}

	return scanner.Resolve(findings, errs)
}

func collectPamModuleNames() ([]string, error) {
	const dir = "/etc/pam.d"
	entries, err := os.ReadDir(dir)
	if err != nil {
		if evidence.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var modules []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, ok, err := evidence.ReadTrimmed(filepath.Join(dir, entry.Name()))
		if err != nil || !ok {
			continue
		}
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			fields := strings.Fields(line)
			for _, f := range fields {
				if strings.HasSuffix(f, ".so") {
					modules = append(modules, f)
				}
			}
		}
	}
	return modules, nil
}

func collectNsswitchModuleNames() ([]string, error) {
	content, ok, err := evidence.ReadTrimmed("/etc/nsswitch.conf")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return parseNsswitchContent(content), nil
}

func parseNsswitchContent(content string) []string {
	var modules []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		for _, f := range strings.Fields(parts[1]) {
			if strings.HasPrefix(f, "[") {
				continue
			}
			modules = append(modules, f)
		}
	}
	return modules
}

// resolveModule reports whether name is a path with a directory component
// of its own that lies outside every directory in allowed and exists on
// disk, returning that path. A bare name is never reported.
func resolveModule(name string, allowed []string) (string, bool) {
	if !strings.Contains(name, "/") {
		// A bare module name resolves through the dynamic linker's
		// normal search path and is never flagged, whether or not it
		// is found in one of the allowed directories.
		for _, dir := range allowed {
			if _, ok, _ := evidence.Stat(filepath.Join(dir, name)); ok {
				return "", false
			}
		}
		return "", false
	}

	abs := name
	for _, dir := range allowed {
		if strings.HasPrefix(abs, dir+"/") {
			return "", false
		}
	}
	if _, ok, _ := evidence.Stat(abs); ok {
		return abs, true
	}
	return "", false
}
