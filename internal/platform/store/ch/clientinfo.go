package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo describes this process so queries can be traced back in system.query_log
func BuildClientInfo(role, name string) clickhouse.ClientInfo {
	if name = strings.TrimSpace(name); name == "" {
		name = "bizdash"
	}
	host, _ := os.Hostname()

	ci := clickhouse.ClientInfo{}
	for _, p := range [][2]string{
		{name, vcsShortSHA()},
		{"role", strings.TrimSpace(role)},
		{"go", runtime.Version()},
		{"host", strings.TrimSpace(host)},
	} {
		ci.Products = append(ci.Products, struct {
			Name    string
			Version string
		}{Name: p[0], Version: p[1]})
	}
	return ci
}

func vcsShortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "dev"
}
