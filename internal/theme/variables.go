package theme

// slot maps one theme field to its variable name.
type slot struct {
	name string
	get  func(*Theme) string
}

// slots is the complete field-to-variable table. Adding a field to Theme
// means adding a row here.
var slots = []slot{
	{"color-primary", func(t *Theme) string { return t.Colors.Primary }},
	{"color-secondary", func(t *Theme) string { return t.Colors.Secondary }},
	{"color-background", func(t *Theme) string { return t.Colors.Background }},
	{"color-surface", func(t *Theme) string { return t.Colors.Surface }},
	{"color-text", func(t *Theme) string { return t.Colors.Text }},
	{"color-textSecondary", func(t *Theme) string { return t.Colors.TextSecondary }},
	{"color-accent", func(t *Theme) string { return t.Colors.Accent }},
	{"color-border", func(t *Theme) string { return t.Colors.Border }},

	{"font-primary", func(t *Theme) string { return t.Fonts.Primary }},
	{"font-secondary", func(t *Theme) string { return t.Fonts.Secondary }},

	{"containerMaxWidth", func(t *Theme) string { return t.Layout.ContainerMaxWidth }},
	{"sidebarWidth", func(t *Theme) string { return t.Layout.SidebarWidth }},
	{"headerHeight", func(t *Theme) string { return t.Layout.HeaderHeight }},
	{"borderRadius", func(t *Theme) string { return t.Layout.BorderRadius }},

	{"spacing-xs", func(t *Theme) string { return t.Layout.Spacing.XS }},
	{"spacing-sm", func(t *Theme) string { return t.Layout.Spacing.SM }},
	{"spacing-md", func(t *Theme) string { return t.Layout.Spacing.MD }},
	{"spacing-lg", func(t *Theme) string { return t.Layout.Spacing.LG }},
	{"spacing-xl", func(t *Theme) string { return t.Layout.Spacing.XL }},

	{"animation-transition", func(t *Theme) string { return t.Animations.Transition }},
	{"animation-hover", func(t *Theme) string { return t.Animations.Hover }},
}

// VariableNames lists every variable name in table order.
func VariableNames() []string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.name
	}
	return names
}

// Variables flattens t into the style namespace in table order.
func Variables(t Theme) []Variable {
	vars := make([]Variable, len(slots))
	for i, s := range slots {
		vars[i] = Variable{Name: s.name, Value: s.get(&t)}
	}
	return vars
}
