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
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ree4pwn/ghostscan/internal/config"
	"github.com/ree4pwn/ghostscan/internal/scanner"
)

// JournalGaps flags silences longer than the configured threshold in the
// current boot's systemd journal — a common side effect of an attacker
// stopping journald, or rotating/truncating logs, to cover their tracks.
func JournalGaps() scanner.Outcome {
	stdout, err := runJournalctl()
	if err != nil {
		return scanner.Err(err.Error())
	}

	var timestamps []uint64
	for _, line := range bytes.Split(stdout, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if !gjson.ValidBytes(line) {
			continue
		}
		ts := gjson.GetBytes(line, "__REALTIME_TIMESTAMP")
		if !ts.Exists() {
			continue
		}
		if value, err := strconv.ParseUint(ts.String(), 10, 64); err == nil {
			timestamps = append(timestamps, value)
		}
	}

	findings := journalTimestampGaps(timestamps)
	if len(findings) == 0 {
		return scanner.Clean()
	}
	return scanner.Findings(findings)
}

// journalTimestampGaps sorts microsecond timestamps and reports every
// consecutive pair further apart than the configured gap threshold.
func journalTimestampGaps(timestamps []uint64) []string {
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i] < timestamps[j] })
	if len(timestamps) < 2 {
		return nil
	}

	var findings []string
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i] - timestamps[i-1]
		gapSecs := gap / 1_000_000
		if gapSecs > config.JournalGapThresholdSecs {
			findings = append(findings, fmt.Sprintf(
				"gap_start=%d gap_end=%d gap_secs=%d", timestamps[i-1], timestamps[i], gapSecs,
			))
		}
	}
	return findings
}

func runJournalctl() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.JournalctlTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "journalctl", "-b", "--output=json", "--no-pager", "-n", "2000")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("journalctl timed out after %s", config.JournalctlTimeout)
		}
		if tail := strings.TrimSpace(stderr.String()); tail != "" {
			return nil, fmt.Errorf("journalctl failed: %s", tail)
		}
		return nil, fmt.Errorf("failed to execute journalctl: %w", err)
	}
	if strings.TrimSpace(stderr.String()) != "" && stdout.Len() == 0 {
		return nil, fmt.Errorf("journalctl reported: %s", strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
