package workers

import (
	"context"
	"log/slog"
	"messenger/observability"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessSampler is the part of a gopsutil process the monitor reads.
type ProcessSampler interface {
	CPUPercent() (float64, error)
	MemoryPercent() (float32, error)
	MemoryInfo() (*process.MemoryInfoStat, error)
}

// HealthMonitoringWorker publishes resource usage of the running process as gauges.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
	sampler        ProcessSampler
}

// NewHealthMonitoringWorker samples the current process.
func NewHealthMonitoringWorker(log *slog.Logger, metricInterval time.Duration) (*HealthMonitoringWorker, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return NewHealthMonitoringWorkerWithSampler(log, metricInterval, p), nil
}

func NewHealthMonitoringWorkerWithSampler(log *slog.Logger, metricInterval time.Duration, sampler ProcessSampler) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{log: log, metricInterval: metricInterval, sampler: sampler}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health monitoring")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample reads every figure once. A failing read leaves its gauge untouched.
func (w *HealthMonitoringWorker) Sample() {
	if cpu, err := w.sampler.CPUPercent(); err != nil {
		w.log.Debug("Error while finding process cpu usage", "err", err)
	} else {
		observability.ProcessCPU.Set(cpu)
	}

	if ram, err := w.sampler.MemoryPercent(); err != nil {
		w.log.Debug("Error while finding process ram usage", "err", err)
	} else {
		observability.ProcessMemory.Set(float64(ram))
	}

	if info, err := w.sampler.MemoryInfo(); err != nil {
		w.log.Debug("Error while finding process memory info", "err", err)
	} else {
		observability.ProcessRSS.Set(float64(info.RSS))
	}
}
