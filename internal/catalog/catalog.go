package catalog

// OtherCategoryID is the reserved bucket for processes no definition matched.
const OtherCategoryID = "other"

// AppDefinition maps process names to a friendly application identity.
// Patterns are matched in order against the process name and its full
// command path; the first match wins.
type AppDefinition struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
	UseRegex bool     `json:"use_regex,omitempty"`
}

// AppCategory is a named, colored grouping of application definitions.
// Built-in categories cannot be deleted; disabled categories are excluded
// from aggregation but kept in the catalog.
type AppCategory struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Color   string          `json:"color"`
	Apps    []AppDefinition `json:"apps"`
	BuiltIn bool            `json:"built_in,omitempty"`
	Enabled bool            `json:"enabled"`
}

// Default returns the built-in catalog. The order is significant: earlier
// categories take precedence when more than one definition matches a
// process.
func Default() []AppCategory {
	return []AppCategory{
		{
			ID:      "ide",
			Name:    "Editors & IDEs",
			Color:   "#007ACC",
			BuiltIn: true,
			Enabled: true,
			Apps: []AppDefinition{
				{ID: "xcode", Name: "Xcode", Patterns: []string{"Xcode", "SourceKitService", "swift-frontend"}},
				{ID: "vscode", Name: "Visual Studio Code", Patterns: []string{"Code Helper", "Visual Studio Code", "Code"}},
				{ID: "jetbrains", Name: "JetBrains IDE", Patterns: []string{"idea", "goland", "pycharm", "webstorm", "clion"}},
				{ID: "vim", Name: "Vim / Neovim", Patterns: []string{"nvim", "vim"}},
			},
		},
		{
			ID:      "dev-tools",
			Name:    "Build & Dev Tools",
			Color:   "#6CC644",
			BuiltIn: true,
			Enabled: true,
			Apps: []AppDefinition{
				{ID: "node", Name: "Node.js", Patterns: []string{"node", "npm", "yarn", "pnpm"}},
				{ID: "docker", Name: "Docker", Patterns: []string{"docker", "com.docker", "containerd"}},
				{ID: "compilers", Name: "Compilers", Patterns: []string{"clang", "cc1", "rustc", "javac", "go build"}},
				{ID: "git", Name: "Git", Patterns: []string{"git"}},
			},
		},
		{
			ID:      "browsers",
			Name:    "Browsers",
			Color:   "#FF7139",
			BuiltIn: true,
			Enabled: true,
			Apps: []AppDefinition{
				{ID: "chrome", Name: "Chrome", Patterns: []string{"Google Chrome", "chrome"}},
				{ID: "safari", Name: "Safari", Patterns: []string{"Safari", "com.apple.WebKit"}},
				{ID: "firefox", Name: "Firefox", Patterns: []string{"firefox"}},
			},
		},
		{
			ID:      "communication",
			Name:    "Communication",
			Color:   "#611F69",
			BuiltIn: true,
			Enabled: true,
			Apps: []AppDefinition{
				{ID: "slack", Name: "Slack", Patterns: []string{"Slack"}},
				{ID: "zoom", Name: "Zoom", Patterns: []string{"zoom.us", "zoom"}},
				{ID: "mail", Name: "Mail", Patterns: []string{"^Mail$"}, UseRegex: true},
			},
		},
		{
			ID:      "databases",
			Name:    "Databases",
			Color:   "#336791",
			BuiltIn: true,
			Enabled: true,
			Apps: []AppDefinition{
				{ID: "postgres", Name: "PostgreSQL", Patterns: []string{"postgres"}},
				{ID: "mysql", Name: "MySQL", Patterns: []string{"mysqld"}},
				{ID: "redis", Name: "Redis", Patterns: []string{"redis-server"}},
			},
		},
		{
			ID:      OtherCategoryID,
			Name:    "Other",
			Color:   "#8E8E93",
			BuiltIn: true,
			Enabled: true,
		},
	}
}

// Enabled filters a catalog down to its enabled categories, preserving order.
func Enabled(cats []AppCategory) []AppCategory {
	out := make([]AppCategory, 0, len(cats))
	for _, c := range cats {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy so callers can hand catalogs across goroutines
// without sharing the definition slices.
func Clone(cats []AppCategory) []AppCategory {
	out := make([]AppCategory, len(cats))
	for i, c := range cats {
		out[i] = c
		out[i].Apps = make([]AppDefinition, len(c.Apps))
		for j, a := range c.Apps {
			out[i].Apps[j] = a
			out[i].Apps[j].Patterns = append([]string(nil), a.Patterns...)
		}
	}
	return out
}
