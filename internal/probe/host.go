package probe

import (
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

// HostInfo reports where the dashboard runs; failures leave fields empty.
func HostInfo() (string, time.Duration) {
	hi, err := host.Info()
	if err != nil || hi == nil {
		return "", 0
	}
	return hi.Hostname, time.Duration(hi.Uptime) * time.Second
}
