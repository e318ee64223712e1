package windsurf

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"
)

// systemInfo mirrors the host description the editor reports.
type systemInfo struct {
	Os             string `json:"Os"`
	Arch           string `json:"Arch"`
	Release        string `json:"Release"`
	Version        string `json:"Version"`
	Machine        string `json:"Machine"`
	Nodename       string `json:"Nodename"`
	Sysname        string `json:"Sysname"`
	ProductVersion string `json:"ProductVersion"`
}

type cpuInfo struct {
	NumSockets int    `json:"NumSockets"`
	NumCores   int    `json:"NumCores"`
	NumThreads int    `json:"NumThreads"`
	VendorID   string `json:"VendorID"`
	Family     string `json:"Family"`
	Model      string `json:"Model"`
	ModelName  string `json:"ModelName"`
	Memory     uint64 `json:"Memory"`
}

func machineName() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "i386"
	case "arm64":
		if runtime.GOOS == "linux" {
			return "aarch64"
		}
		return "arm64"
	default:
		return runtime.GOARCH
	}
}

func sysName() string {
	if runtime.GOOS == "" {
		return ""
	}
	return strings.ToUpper(runtime.GOOS[:1]) + runtime.GOOS[1:]
}

func systemInfoJSON() string {
	host, _ := os.Hostname()
	info := systemInfo{
		Os:       runtime.GOOS,
		Arch:     machineName(),
		Machine:  machineName(),
		Nodename: host,
		Sysname:  sysName(),
	}
	data, _ := json.Marshal(info)
	return string(data)
}

func cpuInfoJSON() string {
	n := runtime.NumCPU()
	info := cpuInfo{
		NumSockets: 1,
		NumCores:   n,
		NumThreads: n,
		Family:     "0",
		Model:      "0",
		ModelName:  "Unknown",
	}
	data, _ := json.Marshal(info)
	return string(data)
}
