package theme

// DefaultID is the theme used when nothing valid has been persisted.
const DefaultID ID = "theme1"

var catalog = []Theme{
	{
		ID:   "theme1",
		Name: "Minimalist Light",
		Colors: Colors{
			Primary:       "#2563eb",
			Secondary:     "#64748b",
			Background:    "#ffffff",
			Surface:       "#f8fafc",
			Text:          "#1e293b",
			TextSecondary: "#64748b",
			Accent:        "#3b82f6",
			Border:        "#e2e8f0",
		},
		Fonts: Fonts{
			Primary:   "Inter, system-ui, -apple-system, sans-serif",
			Secondary: "Inter, system-ui, -apple-system, sans-serif",
		},
		Layout: Layout{
			ContainerMaxWidth: "1200px",
			SidebarWidth:      "0px",
			HeaderHeight:      "80px",
			BorderRadius:      "8px",
			Spacing:           Spacing{XS: "0.5rem", SM: "1rem", MD: "1.5rem", LG: "2rem", XL: "3rem"},
		},
		Animations: Animations{
			Transition: "all 0.3s ease-in-out",
			Hover:      "transform 0.2s ease-in-out",
		},
	},
	{
		ID:   "theme2",
		Name: "Dark Sidebar",
		Colors: Colors{
			Primary:       "#f59e0b",
			Secondary:     "#6b7280",
			Background:    "#111827",
			Surface:       "#1f2937",
			Text:          "#f9fafb",
			TextSecondary: "#d1d5db",
			Accent:        "#fbbf24",
			Border:        "#374151",
		},
		Fonts: Fonts{
			Primary:   "Playfair Display, Georgia, serif",
			Secondary: "Lora, Georgia, serif",
		},
		Layout: Layout{
			ContainerMaxWidth: "100%",
			SidebarWidth:      "280px",
			HeaderHeight:      "70px",
			BorderRadius:      "12px",
			Spacing:           Spacing{XS: "0.75rem", SM: "1.25rem", MD: "2rem", LG: "2.5rem", XL: "4rem"},
		},
		Animations: Animations{
			Transition: "all 0.4s cubic-bezier(0.4, 0, 0.2, 1)",
			Hover:      "transform 0.3s cubic-bezier(0.4, 0, 0.2, 1)",
		},
	},
	{
		ID:   "theme3",
		Name: "Colorful Cards",
		Colors: Colors{
			Primary:       "#ec4899",
			Secondary:     "#8b5cf6",
			Background:    "#fef3c7",
			Surface:       "#ffffff",
			Text:          "#1f2937",
			TextSecondary: "#4b5563",
			Accent:        "#10b981",
			Border:        "#f3e8ff",
		},
		Fonts: Fonts{
			Primary:   "Pacifico, cursive",
			Secondary: "Poppins, sans-serif",
		},
		Layout: Layout{
			ContainerMaxWidth: "1400px",
			SidebarWidth:      "0px",
			HeaderHeight:      "90px",
			BorderRadius:      "20px",
			Spacing:           Spacing{XS: "1rem", SM: "1.5rem", MD: "2.5rem", LG: "3rem", XL: "4.5rem"},
		},
		Animations: Animations{
			Transition: "all 0.5s cubic-bezier(0.68, -0.55, 0.265, 1.55)",
			Hover:      "transform 0.4s cubic-bezier(0.68, -0.55, 0.265, 1.55)",
		},
	},
}

var byID = func() map[ID]Theme {
	m := make(map[ID]Theme, len(catalog))
	for _, t := range catalog {
		m[t.ID] = t
	}
	return m
}()

// Catalog returns a copy of the theme table keyed by id.
func Catalog() map[ID]Theme {
	out := make(map[ID]Theme, len(byID))
	for id, t := range byID {
		out[id] = t
	}
	return out
}

// IDs returns the catalog ids in display order.
func IDs() []ID {
	ids := make([]ID, len(catalog))
	for i, t := range catalog {
		ids[i] = t.ID
	}
	return ids
}

// Themes returns the catalog entries in display order.
func Themes() []Theme {
	return append([]Theme(nil), catalog...)
}

// Lookup returns the theme for id. Unknown ids report false.
func Lookup(id ID) (Theme, bool) {
	t, ok := byID[id]
	return t, ok
}
