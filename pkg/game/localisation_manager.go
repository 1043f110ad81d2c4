package game

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/uianim/pkg/embedded"
	"github.com/decker502/uianim/pkg/logx"
)

// MissingKeyText 空键时 GetText 的返回值
const MissingKeyText = "#MISSING_KEY#"

// ErrNoLanguages 本地化文件中没有任何语言
var ErrNoLanguages = errors.New("localisation: no languages defined")

// Language 语言代码与显示名称
type Language struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type languageTable struct {
	Code    string            `yaml:"code"`
	Name    string            `yaml:"name"`
	Entries map[string]string `yaml:"entries"`
}

type localisationFile struct {
	Default   string          `yaml:"default"`
	Languages []languageTable `yaml:"languages"`
}

// LocalisationManager 本地化文本管理器
//
// 所有语言一次加载；切换语言时通知订阅者（文本元素、语言选择器）刷新。
// 只能在主循环线程上使用。
type LocalisationManager struct {
	languages   []Language
	tables      map[string]map[string]string
	defaultCode string
	current     string

	settings *SettingsManager
	log      logx.Logger

	nextSub int
	subs    []subscriber
}

type subscriber struct {
	id int
	fn func()
}

// NewLocalisationManager 从 path（通过 embedded 读取）加载本地化表
//
// 参数：
//   - path: YAML 文件路径，如 "data/localisation.yaml"
//   - defaultCode: 默认语言，为空时使用文件中的 default 字段，再为空时使用第一个语言
//   - settings: 用于恢复与保存所选语言，可为 nil
func NewLocalisationManager(path, defaultCode string, settings *SettingsManager, log logx.Logger) (*LocalisationManager, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取本地化文件 %s: %w", path, err)
	}
	m, err := ParseLocalisation(data, defaultCode, log)
	if err != nil {
		return nil, fmt.Errorf("无法解析本地化文件 %s: %w", path, err)
	}
	m.settings = settings
	if settings != nil {
		if saved := settings.Language(); saved != "" {
			if _, ok := m.tables[saved]; ok {
				m.current = saved
			} else {
				m.log.Warn("saved language not found", logx.String("language", saved), logx.String("fallback", m.defaultCode))
			}
		}
	}
	return m, nil
}

// ParseLocalisation 解析本地化表，当前语言为默认语言
func ParseLocalisation(data []byte, defaultCode string, log logx.Logger) (*LocalisationManager, error) {
	var f localisationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Languages) == 0 {
		return nil, ErrNoLanguages
	}

	m := &LocalisationManager{
		tables: make(map[string]map[string]string, len(f.Languages)),
		log:    log,
	}
	for i, lang := range f.Languages {
		if lang.Code == "" {
			return nil, fmt.Errorf("语言 #%d 缺少 'code' 字段", i)
		}
		if _, dup := m.tables[lang.Code]; dup {
			return nil, fmt.Errorf("重复的语言代码: %s", lang.Code)
		}
		table := make(map[string]string, len(lang.Entries))
		for k, v := range lang.Entries {
			table[strings.TrimSpace(k)] = v
		}
		m.tables[lang.Code] = table
		name := lang.Name
		if name == "" {
			name = lang.Code
		}
		m.languages = append(m.languages, Language{Code: lang.Code, Name: name})
	}

	m.defaultCode = m.languages[0].Code
	for _, code := range []string{defaultCode, f.Default} {
		if code == "" {
			continue
		}
		if _, ok := m.tables[code]; ok {
			m.defaultCode = code
			break
		}
		log.Warn("default language not found", logx.String("language", code), logx.String("fallback", m.defaultCode))
	}
	m.current = m.defaultCode
	return m, nil
}

// SetLanguage 切换语言
// 未知语言退回默认语言（记录警告）；无论是否变化都会通知订阅者
func (m *LocalisationManager) SetLanguage(code string) {
	if _, ok := m.tables[code]; ok {
		m.current = code
	} else {
		m.log.Warn("language not found, fallback to default",
			logx.String("language", code),
			logx.String("fallback", m.defaultCode))
		m.current = m.defaultCode
	}

	if m.settings != nil {
		if err := m.settings.SetLanguage(m.current); err != nil {
			m.log.Warn("failed to persist language", logx.Err(err))
		}
	}
	m.notify()
}

// NextLanguage 切换到列表中的下一个语言（循环）
func (m *LocalisationManager) NextLanguage() {
	idx := 0
	for i, lang := range m.languages {
		if lang.Code == m.current {
			idx = i
			break
		}
	}
	m.SetLanguage(m.languages[(idx+1)%len(m.languages)].Code)
}

// GetText 返回当前语言的文本
// 空键返回 MissingKeyText；键会去掉首尾空白；不存在时返回 "#key#"
func (m *LocalisationManager) GetText(key string) string {
	if key == "" {
		return MissingKeyText
	}
	key = strings.TrimSpace(key)
	if text, ok := m.tables[m.current][key]; ok {
		return text
	}
	return "#" + key + "#"
}

// CurrentLanguage 当前语言代码
func (m *LocalisationManager) CurrentLanguage() string { return m.current }

// DefaultLanguage 默认语言代码
func (m *LocalisationManager) DefaultLanguage() string { return m.defaultCode }

// Languages 所有语言（文件中的顺序）
func (m *LocalisationManager) Languages() []Language {
	return append([]Language(nil), m.languages...)
}

// Subscribe 注册语言变化回调，返回取消订阅函数
func (m *LocalisationManager) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *LocalisationManager) notify() {
	subs := append([]subscriber(nil), m.subs...)
	for _, s := range subs {
		s.fn()
	}
}
