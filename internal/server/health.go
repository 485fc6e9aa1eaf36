package server

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

type healthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	PID           int    `json:"pid"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Goroutines    int    `json:"goroutines"`
	RSSBytes      uint64 `json:"rss_bytes,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Service:       "sessiondeck",
		PID:           os.Getpid(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
	}
	// Process stats are best effort; health stays "ok" without them.
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
			resp.RSSBytes = mem.RSS
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
