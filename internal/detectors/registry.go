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

import "github.com/ree4pwn/ghostscan/internal/scanner"

// Registry is the full, fixed set of ghostscan checks in report order.
// This order is part of the tool's contract with its output: it must
// never be resorted or regrouped, so that two runs against the same host
// produce a diff-friendly report.
var Registry = []scanner.Scanner{
	{Name: "Hidden LKM (proc/sysfs vs kallsyms clusters)", Run: HiddenLkm},
	{Name: "Kernel taint with no visible cause", Run: KernelTaint},
	{Name: "Ftrace redirection on critical paths", Run: FtraceRedirection},
	{Name: "Unknown kprobes on sensitive symbols", Run: UnknownKprobes},
	{Name: "Syscall table pointer integrity", Run: SyscallTable},
	{Name: "modprobe helper tamper", Run: ModprobeHotplug},
	{Name: "Netfilter hook drift (orphans/invalid jumps)", Run: NetfilterHookDrift},
	{Name: "Module list linkage tamper", Run: ModuleListLinkageTamper},
	{Name: "Ownerless BPF objects", Run: OwnerlessBpfObjects},
	{Name: "BPF kprobe attachments to sensitive symbols", Run: BpfKprobeAttachments},
	{Name: "BPF LSM present", Run: BpfLsm},
	{Name: "XDP/TC detached programs", Run: XdpTcDetached},
	{Name: "Sockmap/Sockhash verdict without owners", Run: SockmapSockhash},
	{Name: "Sensitive kfunc usage", Run: SensitiveKfunc},
	{Name: "Pins on non-bpffs mounts", Run: PinsNonBpffs},
	{Name: "Netlink vs /proc/net sockets", Run: NetlinkVsProc},
	{Name: "Task list mismatch (BPF vs /proc)", Run: TaskListMismatch},
	{Name: "Hidden PIDs (bpf-only)", Run: HiddenPids},
	{Name: "Kernel thread masquerade", Run: KernelThreadMasquerade},
	{Name: "Suspicious ptrace edges", Run: SuspiciousPtrace},
	{Name: "Seccomp user-notify responders", Run: SeccompUserNotify},
	{Name: "Deleted-binary or memfd processes", Run: DeletedMemfd},
	{Name: "Core dump pipeline tamper", Run: CorePatternPipeline},
	{Name: "Hidden listeners (netlink-only)", Run: HiddenListeners},
	{Name: "Ownerless sockets", Run: OwnerlessSockets},
	{Name: "Netfilter cloaking artifacts", Run: NetfilterCloaking},
	{Name: "Local port backdoors (tmp/deleted)", Run: LocalPortBackdoors},
	{Name: "ld.so.preload tamper", Run: LdSoPreload},
	{Name: "Cron/anacron/at ghost jobs", Run: CronGhost},
	{Name: "systemd ghost units (exec in tmp/deleted)", Run: SystemdGhost},
	{Name: "SSH footholds (forced/wildcard/insecure)", Run: SshFootholds},
	{Name: "OverlayFS whiteouts / opaque", Run: OverlayfsWhiteouts},
	{Name: "Hidden bind/immutable mounts", Run: HiddenBindMounts},
	{Name: "Fanotify watchers on sensitive mounts", Run: FanotifyWatchers},
	{Name: "PAM/NSS modules from non-system paths", Run: PamNss},
	{Name: "Live LD_PRELOAD to deleted/writable libs", Run: LiveLdPreload},
	{Name: "Library search hijack (SUID/priv)", Run: LibrarySearchHijack},
	{Name: "LD_AUDIT in daemons (no TTY)", Run: LdAudit},
	{Name: "Large RX-anonymous regions in daemons (non-JIT)", Run: LargeRx},
	{Name: "Kernel text not RO (best-effort)", Run: KernelTextRo},
	{Name: "scripts.d executable from tmp/non-root", Run: ScriptsD},
	{Name: "sudoers dangerous entries", Run: Sudoers},
	{Name: "Kernel cmdline disables auditing/lockdown/IMA", Run: KernelCmdline},
	{Name: "Sensitive host mounts into containers", Run: SensitiveHostMounts},
	{Name: "Host PID namespace shared", Run: HostPidNs},
	{Name: "Host net namespace shared", Run: HostNetNs},
	{Name: "Overlay lowerdir outside storage root", Run: OverlayLowerdir},
	{Name: "Audit disabled or dropping", Run: AuditDisabled},
	{Name: "Journal gaps (current boot)", Run: JournalGaps},
	{Name: "Kernel message suppression", Run: KernelMessageSuppression},
}
