package exporter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/winstatz/internal/model"
)

const namespace = "winstatz"

// Exporter publishes the latest UsageSnapshot as Prometheus gauges.
// winstatz_group_up reports which groups the last sample read; labelled
// series of an absent group are dropped, scalar ones keep their last value.
type Exporter struct {
	registry *prometheus.Registry
	logger   *zap.Logger

	groupUp      *prometheus.GaugeVec
	corePercent  *prometheus.GaugeVec
	cpuPercent   prometheus.Gauge
	memory       *prometheus.GaugeVec
	memPercent   prometheus.Gauge
	diskRead     *prometheus.GaugeVec
	diskWrite    *prometheus.GaugeVec
	netMbps      *prometheus.GaugeVec
	battPercent  prometheus.Gauge
	battPlugged  prometheus.Gauge
	battMinutes  prometheus.Gauge
	sampleWindow prometheus.Gauge
	samples      prometheus.Counter
}

func New(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	vec := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}

	e := &Exporter{
		registry:     prometheus.NewRegistry(),
		logger:       logger,
		groupUp:      vec("group_up", "Whether the last sample read the group (1) or not (0).", "group"),
		corePercent:  vec("cpu_core_percent", "Per-core busy percent.", "core"),
		cpuPercent:   gauge("cpu_percent", "Mean busy percent over all cores."),
		memory:       vec("memory_mb", "Memory in MB (1,048,576 bytes).", "state"),
		memPercent:   gauge("memory_percent", "Memory in use, percent."),
		diskRead:     vec("disk_read_mbps", "Disk read throughput in MB/s.", "device"),
		diskWrite:    vec("disk_write_mbps", "Disk write throughput in MB/s.", "device"),
		netMbps:      vec("network_mbps", "System-wide network throughput in Mb/s.", "direction"),
		battPercent:  gauge("battery_percent", "Battery charge percent."),
		battPlugged:  gauge("battery_plugged_in", "1 when on external power."),
		battMinutes:  gauge("battery_time_left_minutes", "Estimated minutes left; 2147483640 when unlimited."),
		sampleWindow: gauge("sample_elapsed_seconds", "Wall time the last sample took."),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "samples_total", Help: "Snapshots observed.",
		}),
	}
	e.registry.MustRegister(
		e.groupUp, e.corePercent, e.cpuPercent, e.memory, e.memPercent,
		e.diskRead, e.diskWrite, e.netMbps,
		e.battPercent, e.battPlugged, e.battMinutes,
		e.sampleWindow, e.samples,
	)
	return e
}

// Observe replaces the exported values with those of s.
func (e *Exporter) Observe(s model.UsageSnapshot) {
	e.samples.Inc()
	e.sampleWindow.Set(s.Elapsed.Seconds())

	e.corePercent.Reset()
	c, ok := s.CPU.Get()
	e.up("cpu", ok)
	if ok {
		for i, p := range c.PerCore {
			e.corePercent.WithLabelValues(strconv.Itoa(i)).Set(p)
		}
		e.cpuPercent.Set(model.AverageCPU(c.PerCore))
	}

	e.memory.Reset()
	m, ok := s.Memory.Get()
	e.up("memory", ok)
	if ok {
		e.memory.WithLabelValues("total").Set(m.TotalMB)
		e.memory.WithLabelValues("used").Set(m.UsedMB)
		e.memory.WithLabelValues("free").Set(m.FreeMB)
		e.memPercent.Set(m.Percent)
	}

	// Devices come and go; drop series for the ones no longer listed.
	e.diskRead.Reset()
	e.diskWrite.Reset()
	disks, ok := s.Disks.Get()
	e.up("disks", ok)
	for _, d := range disks {
		e.diskRead.WithLabelValues(d.Device).Set(d.ReadMBps)
		e.diskWrite.WithLabelValues(d.Device).Set(d.WriteMBps)
	}

	e.netMbps.Reset()
	n, ok := s.Network.Get()
	e.up("network", ok)
	if ok {
		e.netMbps.WithLabelValues("up").Set(n.UpMbps)
		e.netMbps.WithLabelValues("down").Set(n.DownMbps)
	}

	b, ok := s.Battery.Get()
	e.up("battery", ok)
	if ok {
		e.battPercent.Set(b.Percent)
		e.battPlugged.Set(boolGauge(b.PluggedIn))
		e.battMinutes.Set(float64(b.TimeLeftMinutes))
	}
}

func (e *Exporter) up(group string, ok bool) {
	e.groupUp.WithLabelValues(group).Set(boolGauge(ok))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Handler serves the registry in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Run serves /metrics on addr and observes every snapshot from stream until
// ctx is done or the stream closes.
func (e *Exporter) Run(ctx context.Context, addr string, stream <-chan model.UsageSnapshot) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "winstatz exporter: metrics at /metrics")
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("Starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err := <-errCh:
			if err != nil {
				runErr = fmt.Errorf("metrics server: %w", err)
			}
			break loop
		case snap, ok := <-stream:
			if !ok {
				break loop
			}
			e.Observe(snap)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("shutting down metrics server: %w", err)
	}
	e.logger.Info("Metrics server stopped")
	return runErr
}
