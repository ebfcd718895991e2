package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	internalconfig "github.com/weisyn/fullrbf/internal/config"
	"github.com/weisyn/fullrbf/pkg/interfaces/config"
	"github.com/weisyn/fullrbf/pkg/types"
)

// defaultEnvFile 工作目录下的 .env 文件，不存在时忽略
const defaultEnvFile = ".env"

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 配置文件路径，为空时读取 FULLRBF_CONFIG
	configFilePath string

	// 在启动前加载的 .env 文件
	envFiles []string

	// 用户配置
	appConfig *types.AppConfig
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithConfigFile 设置配置文件路径
func WithConfigFile(configPath string) Option {
	return func(o *options) {
		o.configFilePath = configPath
	}
}

// WithEnvFiles 设置需要加载的 .env 文件，替换默认的 .env
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.envFiles = files
	}
}

// WithAppConfig 直接指定用户配置，设置后不再读取配置文件
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		o.appConfig = appConfig
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	options := &options{
		envFiles: []string{defaultEnvFile},
	}

	for _, opt := range opts {
		opt(options)
	}

	return options
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// load 加载 .env 与配置文件
//
// .env 只补充尚未设置的环境变量；显式指定的配置文件不存在时报错。
func (o *options) load() error {
	for _, file := range o.envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("加载环境变量文件 %s 失败: %w", file, err)
		}
	}

	if o.appConfig != nil {
		return nil
	}

	path := o.configFilePath
	if path == "" {
		path = os.Getenv(internalconfig.EnvConfigFile)
	}
	if path == "" {
		return nil
	}

	appConfig, err := loadConfigFile(path)
	if err != nil {
		return err
	}
	o.appConfig = appConfig
	return nil
}

// loadConfigFile 读取 JSON 配置文件
func loadConfigFile(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	return &appConfig, nil
}
