package domain

import "path/filepath"

// IniFileName is the critical 3dmigoto configuration file inside the
// importer install folder. Its absence marks a damaged installation.
const IniFileName = "d3dx.ini"

// ImporterConfig is the persisted per-importer configuration
type ImporterConfig struct {
	PackageName    string       `yaml:"package_name"`    // Importer identifier, e.g. "WWMI"
	ImporterFolder string       `yaml:"importer_folder"` // Install folder, absolute or relative to app root
	GameFolder     string       `yaml:"game_folder"`     // Target game installation directory
	LauncherTheme  string       `yaml:"launcher_theme"`  // Theme name; theme path is derived, never stored
	OverwriteIni   bool         `yaml:"overwrite_ini"`   // False preserves the pre-install d3dx.ini on update
	PreLaunch      HookCommand  `yaml:"run_pre_launch"`
	PostLoad       HookCommand  `yaml:"run_post_load"`
	D3DXIni        D3DXSettings `yaml:"d3dx_ini"`
}

// ImporterPath resolves the importer install folder. Relative folders
// resolve against the application root.
func (c *ImporterConfig) ImporterPath(appRoot string) string {
	if filepath.IsAbs(c.ImporterFolder) {
		return c.ImporterFolder
	}
	return filepath.Join(appRoot, c.ImporterFolder)
}

// IniPath returns the location of the critical d3dx.ini file.
func (c *ImporterConfig) IniPath(appRoot string) string {
	return filepath.Join(c.ImporterPath(appRoot), IniFileName)
}

// ThemePath resolves the active theme directory under the themes root.
func (c *ImporterConfig) ThemePath(themesRoot string) string {
	theme := c.LauncherTheme
	if theme == "" {
		theme = "Default"
	}
	return filepath.Join(themesRoot, theme)
}
