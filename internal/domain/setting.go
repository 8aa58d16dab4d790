package domain

// SettingKind determines how a d3dx_ini setting resolves to an INI value
type SettingKind int

const (
	SettingConstant SettingKind = iota // Literal value written as-is
	SettingBool                        // Selects the "on" or "off" sub-value
	SettingMap                         // Selects a sub-value by discriminator key
)

func (k SettingKind) String() string {
	switch k {
	case SettingConstant:
		return "constant"
	case SettingBool:
		return "bool"
	case SettingMap:
		return "map"
	default:
		return "unknown"
	}
}

// ParseSettingKind converts a string to SettingKind
func ParseSettingKind(s string) SettingKind {
	switch s {
	case "bool":
		return SettingBool
	case "map":
		return SettingMap
	default:
		return SettingConstant
	}
}

// SettingValue is one `(section, option)` leaf of the d3dx_ini mapping.
// For Constant settings Literal holds the value to write; for Bool and Map
// settings Choices holds the sub-values keyed by "on"/"off" or by an
// arbitrary discriminator string.
type SettingValue struct {
	Literal string            `yaml:"value,omitempty"`
	Choices map[string]string `yaml:"choices,omitempty"`
}

// UnmarshalYAML accepts either a scalar (Constant literal) or a mapping
// (Bool/Map choices), matching the package-provided d3dx_ini format.
func (v *SettingValue) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var scalar string
	if err := unmarshal(&scalar); err == nil {
		v.Literal = scalar
		return nil
	}
	var choices map[string]string
	if err := unmarshal(&choices); err != nil {
		return err
	}
	v.Choices = choices
	return nil
}

// MarshalYAML writes the compact form back out.
func (v SettingValue) MarshalYAML() (interface{}, error) {
	if v.Choices != nil {
		return v.Choices, nil
	}
	return v.Literal, nil
}

// D3DXSettings is the nested d3dx_ini mapping:
// setting name -> section -> option -> value
type D3DXSettings map[string]map[string]map[string]SettingValue

// RuntimeFlags are the runtime toggles projected onto the INI file as Bool
// settings on every config sync.
type RuntimeFlags struct {
	DebugLogging  bool `yaml:"debug_logging"`
	MuteWarnings  bool `yaml:"mute_warnings"`
	EnableHunting bool `yaml:"enable_hunting"`
	DumpShaders   bool `yaml:"dump_shaders"`
}
