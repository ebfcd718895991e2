// Package version 提供构建版本信息
package version

import (
	"fmt"
	"runtime"
	"time"
)

// 构建时通过 ldflags 注入
var (
	Version   = "v0.1.0"
	BuildTime = "unknown" // RFC3339
	Commit    = "unknown"

	GoVersion = runtime.Version()
	GoArch    = runtime.GOARCH
	GoOS      = runtime.GOOS
)

// BuildInfo 完整构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	GoArch    string `json:"go_arch"`
	GoOS      string `json:"go_os"`
}

// GetVersion 获取版本号
func GetVersion() string {
	return Version
}

// GetBuildInfo 获取完整构建信息
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: GoVersion,
		GoArch:    GoArch,
		GoOS:      GoOS,
	}
}

// GetFullVersion 获取完整版本信息（用于 --version 输出）
func GetFullVersion() string {
	info := GetBuildInfo()

	versionStr := info.Version
	if info.Commit != "unknown" {
		versionStr += fmt.Sprintf(" (%s)", info.Commit)
	}

	if info.BuildTime != "unknown" {
		if parsedTime, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
			versionStr += fmt.Sprintf("\n构建时间: %s", parsedTime.Format("2006-01-02 15:04:05 MST"))
		} else {
			versionStr += fmt.Sprintf("\n构建时间: %s", info.BuildTime)
		}
	}

	versionStr += fmt.Sprintf("\nGo版本: %s", info.GoVersion)
	versionStr += fmt.Sprintf("\n平台: %s/%s", info.GoOS, info.GoArch)
	return versionStr
}
