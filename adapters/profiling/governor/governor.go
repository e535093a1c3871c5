// Package governor implements the Memory Governor (spec section 4.2): a
// periodic RSS/system-memory probe that warns at 75% utilization and
// trips a non-blocking circuit breaker at 85%, abandoning the profile
// run rather than letting it run the host out of memory.
package governor

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"

	"dataprofiler/internal/apperr"
	"dataprofiler/internal/obslog"
)

// Snapshot is one memory reading.
type Snapshot struct {
	RSSBytes       uint64
	TotalBytes     uint64
	AvailBytes     uint64
	UtilizedPercent float64
}

// Governor probes memory every ProbeInterval chunks and classifies the
// reading against Warn/Crit thresholds.
type Governor struct {
	ProbeInterval int
	WarnPercent   float64
	CritPercent   float64
	logger        *obslog.Logger

	chunksSinceProbe int
	warned           bool
}

// New builds a Governor from the profiler config's probe interval and
// thresholds.
func New(probeInterval int, warnPercent, critPercent float64, logger *obslog.Logger) *Governor {
	if probeInterval <= 0 {
		probeInterval = 10
	}
	return &Governor{ProbeInterval: probeInterval, WarnPercent: warnPercent, CritPercent: critPercent, logger: logger}
}

// Tick is called once per processed chunk. It probes memory every
// ProbeInterval calls; on a critical reading it returns a fatal
// ResourceExhausted error, otherwise nil. The governor never blocks
// the caller — a probe failure is logged and treated as "no signal"
// rather than propagated.
func (g *Governor) Tick(rowsProcessed int64) error {
	g.chunksSinceProbe++
	if g.chunksSinceProbe < g.ProbeInterval {
		return nil
	}
	g.chunksSinceProbe = 0

	snap, err := probe()
	if err != nil {
		if g.logger != nil {
			g.logger.WarnFields("memory governor: probe failed, continuing without a reading",
				obslog.F("error", err), obslog.F("rows_processed", rowsProcessed))
		}
		return nil
	}

	switch {
	case snap.UtilizedPercent >= g.CritPercent:
		if g.logger != nil {
			g.logger.ErrorFields("memory governor: critical threshold tripped",
				obslog.F("utilized_pct", snap.UtilizedPercent),
				obslog.F("rss_bytes", snap.RSSBytes),
				obslog.F("avail_bytes", snap.AvailBytes),
				obslog.F("rows_processed", rowsProcessed))
		}
		return apperr.NewResourceExhausted(rowsProcessed, snap.RSSBytes, snap.AvailBytes)
	case snap.UtilizedPercent >= g.WarnPercent:
		if !g.warned && g.logger != nil {
			g.logger.WarnFields("memory governor: warn threshold crossed",
				obslog.F("utilized_pct", snap.UtilizedPercent),
				obslog.F("rss_bytes", snap.RSSBytes),
				obslog.F("avail_bytes", snap.AvailBytes),
				obslog.F("rows_processed", rowsProcessed))
		}
		g.warned = true
	default:
		g.warned = false
	}
	return nil
}

// probe reads the process RSS via runtime.ReadMemStats (for the
// process's own heap footprint) and total/available system memory from
// /proc/meminfo, grounded on stdlib-only primitives since the pack
// carries no gopsutil-equivalent dependency (see DESIGN.md).
func probe() (Snapshot, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	total, avail, err := readMeminfo()
	if err != nil {
		return Snapshot{}, err
	}

	used := total - avail
	utilized := 0.0
	if total > 0 {
		utilized = float64(used) / float64(total) * 100.0
	}

	return Snapshot{
		RSSBytes:        m.Sys,
		TotalBytes:      total,
		AvailBytes:      avail,
		UtilizedPercent: utilized,
	}, nil
}

// readMeminfo parses /proc/meminfo for MemTotal and MemAvailable, both
// reported in kB.
func readMeminfo() (total, avail uint64, err error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			total = parseMeminfoLine(line)
		case strings.HasPrefix(line, "MemAvailable:"):
			avail = parseMeminfoLine(line)
		}
	}
	return total * 1024, avail * 1024, scanner.Err()
}

func parseMeminfoLine(line string) uint64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	v, _ := strconv.ParseUint(fields[1], 10, 64)
	return v
}
