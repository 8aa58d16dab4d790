package core

import (
	"fmt"

	"milaunch/internal/domain"
	"milaunch/internal/ini"
)

// Projector maps configured d3dx_ini settings onto INI option writes.
// Each named setting fans out to one or more (section, option) pairs
// from the importer's d3dx_ini table.
type Projector struct {
	settings domain.D3DXSettings
}

// NewProjector creates a projector over an importer's d3dx_ini table
func NewProjector(settings domain.D3DXSettings) *Projector {
	return &Projector{settings: settings}
}

// ProjectConstant writes every literal value stored under name.
func (p *Projector) ProjectConstant(doc *ini.Document, name string) error {
	return p.project(doc, name, domain.SettingConstant, "")
}

// ProjectBool writes the "on" or "off" branch of every option under name.
func (p *Projector) ProjectBool(doc *ini.Document, name string, on bool) error {
	key := "off"
	if on {
		key = "on"
	}
	return p.project(doc, name, domain.SettingBool, key)
}

// ProjectMap writes the branch selected by the discriminator key for
// every option under name.
func (p *Projector) ProjectMap(doc *ini.Document, name, key string) error {
	return p.project(doc, name, domain.SettingMap, key)
}

func (p *Projector) project(doc *ini.Document, name string, kind domain.SettingKind, key string) error {
	sections, ok := p.settings[name]
	if !ok {
		return fmt.Errorf("%w: config has no %q setting", domain.ErrMissingSetting, name)
	}

	for section, options := range sections {
		for option, sv := range options {
			value, err := resolveValue(sv, kind, key, section, option)
			if err != nil {
				return err
			}
			if err := doc.Set(section, option, value); err != nil {
				return fmt.Errorf("%w: section %q option %q value %q: %v",
					domain.ErrIniWrite, section, option, value, err)
			}
		}
	}
	return nil
}

// resolveValue picks the concrete value to write for one (section, option)
// pair. Bool and Map settings select from the choices map; a missing
// branch identifies the section, option and attempted key.
func resolveValue(sv domain.SettingValue, kind domain.SettingKind, key, section, option string) (string, error) {
	if kind == domain.SettingConstant {
		return sv.Literal, nil
	}
	value, ok := sv.Choices[key]
	if !ok {
		return "", fmt.Errorf("%w: section %q option %q key %q",
			domain.ErrMissingSettingValue, section, option, key)
	}
	return value, nil
}
