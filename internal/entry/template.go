package entry

// TemplateTitle is the default title for template-mode entries.
const TemplateTitle = "Daily Reflection"

// TemplateContent is the reflective-prompt structure seeded into
// template-mode entries. The store treats it as any other content string.
const TemplateContent = `## How am I feeling today?

## What happened today?

## What am I grateful for?

## What did I learn?

## What do I want to focus on tomorrow?
`

// TemplateTags returns the default tag set for template-mode entries.
func TemplateTags() []string {
	return []string{"daily"}
}
