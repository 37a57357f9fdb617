package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
)

const (
	SettingDisplayPrecision                  = "DisplayPrecision"
	SettingBackColor                         = "BackColor"
	SettingCursorPromptBackColor             = "CursorPromptBackColor"
	SettingCursorPromptForeColor             = "CursorPromptForeColor"
	SettingSelectionWindowColor              = "SelectionWindowColor"
	SettingSelectionWindowBorderColor        = "SelectionWindowBorderColor"
	SettingReverseSelectionWindowColor       = "ReverseSelectionWindowColor"
	SettingReverseSelectionWindowBorderColor = "ReverseSelectionWindowBorderColor"
	SettingSelectionHighlightColor           = "SelectionHighlightColor"
	SettingJigColor                          = "JigColor"
	SettingControlPointColor                 = "ControlPointColor"
	SettingActiveControlPointColor           = "ActiveControlPointColor"
	SettingPickBoxSize                       = "PickBoxSize"
	SettingControlPointSize                  = "ControlPointSize"
)

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrSettingType    = errors.New("setting type mismatch")
)

func defaultSettings() map[string]any {
	return map[string]any{
		SettingDisplayPrecision:                  2,
		SettingBackColor:                         color.RGBA{33, 40, 48, 255},
		SettingCursorPromptBackColor:             color.RGBA{84, 58, 84, 255},
		SettingCursorPromptForeColor:             color.RGBA{255, 255, 255, 128},
		SettingSelectionWindowColor:              color.RGBA{46, 116, 251, 64},
		SettingSelectionWindowBorderColor:        colornames.White,
		SettingReverseSelectionWindowColor:       color.RGBA{46, 251, 116, 64},
		SettingReverseSelectionWindowBorderColor: colornames.White,
		SettingSelectionHighlightColor:           color.RGBA{46, 116, 251, 64},
		SettingJigColor:                          colornames.Orange,
		SettingControlPointColor:                 color.RGBA{46, 116, 251, 255},
		SettingActiveControlPointColor:           color.RGBA{251, 116, 46, 255},
		SettingPickBoxSize:                       6,
		SettingControlPointSize:                  7,
	}
}

// Settings is a typed key/value store seeded with defaults. Each key keeps
// the type of its default. Safe for concurrent use.
type Settings struct {
	mu      sync.RWMutex
	values  map[string]any
	version uint64
}

func NewSettings() *Settings {
	return &Settings{values: defaultSettings()}
}

// Version increases on every change.
func (s *Settings) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Settings) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Settings) Int(key string) int {
	v, _ := s.Get(key)
	i, _ := v.(int)
	return i
}

func (s *Settings) Float(key string) float64 {
	switch v, _ := s.Get(key); n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func (s *Settings) Color(key string) color.RGBA {
	v, _ := s.Get(key)
	c, _ := v.(color.RGBA)
	return c
}

// Set replaces the value for key. The value must have the key's type.
func (s *Settings) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.values[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	if fmt.Sprintf("%T", old) != fmt.Sprintf("%T", value) {
		return fmt.Errorf("%w: %s wants %T, got %T", ErrSettingType, key, old, value)
	}
	s.values[key] = value
	s.version++
	return nil
}

// Reset restores every default.
func (s *Settings) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = defaultSettings()
	s.version++
}

// Keys returns the setting names in sorted order.
func (s *Settings) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// ApplyJSON sets values from a JSON object. Colors are given as "#rrggbb",
// "#rrggbbaa" or a CSS color name. Either every value applies or none does.
func (s *Settings) ApplyJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}

	decoded := make(map[string]any, len(raw))
	defaults := defaultSettings()
	for key, msg := range raw {
		def, ok := defaults[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		v, err := decodeSetting(def, msg)
		if err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
		decoded[key] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.values, decoded)
	s.version++
	return nil
}

// MarshalJSON writes the current values in the format ApplyJSON accepts.
func (s *Settings) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		if c, ok := v.(color.RGBA); ok {
			out[k] = FormatColor(c)
			continue
		}
		out[k] = v
	}
	return json.Marshal(out)
}

func decodeSetting(def any, msg json.RawMessage) (any, error) {
	switch def.(type) {
	case int:
		var i int
		if err := json.Unmarshal(msg, &i); err != nil {
			return nil, err
		}
		return i, nil
	case float64:
		var f float64
		if err := json.Unmarshal(msg, &f); err != nil {
			return nil, err
		}
		return f, nil
	case color.RGBA:
		var str string
		if err := json.Unmarshal(msg, &str); err != nil {
			return nil, err
		}
		return ParseColor(str)
	}
	return nil, ErrSettingType
}

// ParseColor accepts "#rrggbb", "#rrggbbaa" or a CSS color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// FormatColor renders c as "#rrggbbaa".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
