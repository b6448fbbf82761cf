package config

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	settingsObject   = "pip"
	settingsProperty = "animation"
)

// SettingsStore 动画配置的持久化存储
//
// 使用 gdata 跨平台存储用户调整过的配置（YAML 格式）。
// gdataManager 为 nil 时进入降级模式：只在内存中保存，不持久化。
type SettingsStore struct {
	gdataManager *gdata.Manager
	config       *AnimationConfig
	log          *log.Logger
}

// NewSettingsStore 创建存储并尝试加载已保存的配置
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - base: 没有保存记录时使用的配置，nil 时使用默认配置
//   - l: 日志器，nil 时使用 charm 默认日志器
//
// 加载失败不是致命错误，会记录警告并使用 base。
func NewSettingsStore(gdataManager *gdata.Manager, base *AnimationConfig, l *log.Logger) *SettingsStore {
	if base == nil {
		base = DefaultAnimationConfig()
	}
	if l == nil {
		l = log.Default()
	}
	s := &SettingsStore{gdataManager: gdataManager, config: base, log: l}

	if err := s.Load(); err != nil {
		l.Warnf("[SettingsStore] Failed to load settings: %v (using base config)", err)
	}
	return s
}

// OpenGdata 按应用名打开 gdata 存储
func OpenGdata(appName string) (*gdata.Manager, error) {
	if err := EnsureStorageDir(); err != nil {
		return nil, err
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return m, nil
}

// Load 从 gdata 加载配置
//
// 没有保存记录时保持当前配置。保存的数据只覆盖其中出现的字段。
func (s *SettingsStore) Load() error {
	if s.gdataManager == nil {
		return nil
	}
	if !s.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := *s.config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := validateConfig(&loaded); err != nil {
		return fmt.Errorf("invalid saved settings: %w", err)
	}

	s.config = &loaded
	s.log.Debugf("[SettingsStore] Settings loaded successfully")
	return nil
}

// Save 验证并保存配置
//
// 降级模式下只更新内存中的配置。
func (s *SettingsStore) Save(cfg *AnimationConfig) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("refuse to save invalid settings: %w", err)
	}
	copied := *cfg
	s.config = &copied

	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.config)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.log.Debugf("[SettingsStore] Settings saved successfully")
	return nil
}

// Config 当前配置
func (s *SettingsStore) Config() *AnimationConfig {
	return s.config
}
