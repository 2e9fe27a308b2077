package delivery

import "strings"

// UsernamePlaceholder is replaced with the principal name before execution.
const UsernamePlaceholder = "{username}"

// Render substitutes the principal name into a command template.
// Only the first placeholder is replaced; templates carry at most one.
func Render(template, principal string) string {
	return strings.Replace(template, UsernamePlaceholder, principal, 1)
}
