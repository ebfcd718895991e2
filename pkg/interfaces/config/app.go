// Package config 定义配置相关接口
package config

import "github.com/weisyn/fullrbf/pkg/types"

// AppOptions 应用配置选项接口
// 提供获取用户配置的统一接口
type AppOptions interface {
	// GetAppConfig 获取用户配置，未提供配置文件时返回 nil
	GetAppConfig() *types.AppConfig
}
