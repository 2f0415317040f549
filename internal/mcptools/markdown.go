package mcptools

import (
	"fmt"
	"sort"
	"strings"
)

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// text renders a JSON scalar for display. Whole numbers drop the decimal
// point that float64 decoding would otherwise add.
func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprint(x)
	default:
		return fmt.Sprint(x)
	}
}

// results returns the rows and total of a paginated {"results", "total"}
// envelope. Endpoints that return a bare array are accepted too.
func results(data any) ([]any, any) {
	if rows := asSlice(data); rows != nil {
		return rows, len(rows)
	}
	m := asMap(data)
	return asSlice(m["results"]), m["total"]
}

func subscriberMarkdown(sub map[string]any) string {
	var b strings.Builder
	b.WriteString("# Subscriber Details\n\n")
	fmt.Fprintf(&b, "**ID:** %s\n", text(sub["id"]))
	fmt.Fprintf(&b, "**Email:** %s\n", text(sub["email"]))
	fmt.Fprintf(&b, "**Name:** %s\n", text(sub["name"]))
	fmt.Fprintf(&b, "**Status:** %s\n", text(sub["status"]))
	fmt.Fprintf(&b, "**Created:** %s\n", text(sub["created_at"]))
	fmt.Fprintf(&b, "**Updated:** %s\n", text(sub["updated_at"]))

	b.WriteString("\n## Lists\n")
	for _, l := range asSlice(sub["lists"]) {
		lst := asMap(l)
		fmt.Fprintf(&b, "- %s (ID: %s)\n", text(lst["name"]), text(lst["id"]))
	}

	b.WriteString("\n## Attributes\n")
	attribs := asMap(sub["attribs"])
	keys := make([]string, 0, len(attribs))
	for k := range attribs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- **%s:** %s\n", k, text(attribs[k]))
	}
	return b.String()
}

func subscribersMarkdown(data any) string {
	rows, total := results(data)

	var b strings.Builder
	b.WriteString("# Subscribers List\n\n")
	fmt.Fprintf(&b, "**Total Subscribers:** %s\n", text(total))
	fmt.Fprintf(&b, "**Showing:** %d subscribers\n\n", len(rows))
	for _, r := range rows {
		sub := asMap(r)
		names := make([]string, 0)
		for _, l := range asSlice(sub["lists"]) {
			names = append(names, text(asMap(l)["name"]))
		}
		fmt.Fprintf(&b, "- **%s** (%s) - Status: %s - Lists: %s\n",
			text(sub["name"]), text(sub["email"]), text(sub["status"]), strings.Join(names, ", "))
	}
	b.WriteString("\n*Use the listmonk://subscriber/{id} or listmonk://subscriber/email/{email} resources for details.*\n")
	return b.String()
}

func listsMarkdown(data any) string {
	rows, total := results(data)

	var b strings.Builder
	b.WriteString("# Mailing Lists\n\n")
	fmt.Fprintf(&b, "**Total Lists:** %s\n\n", text(total))
	for _, r := range rows {
		l := asMap(r)
		fmt.Fprintf(&b, "- **%s** (ID: %s) - Type: %s - Opt-in: %s - Subscribers: %s\n",
			text(l["name"]), text(l["id"]), text(l["type"]), text(l["optin"]), text(l["subscriber_count"]))
	}
	return b.String()
}

func campaignsMarkdown(data any) string {
	rows, total := results(data)

	var b strings.Builder
	b.WriteString("# Campaigns\n\n")
	fmt.Fprintf(&b, "**Total Campaigns:** %s\n\n", text(total))
	for _, r := range rows {
		c := asMap(r)
		fmt.Fprintf(&b, "- **%s** (ID: %s) - Status: %s - Subject: %s - Sent: %s/%s\n",
			text(c["name"]), text(c["id"]), text(c["status"]), text(c["subject"]),
			text(c["sent"]), text(c["to_send"]))
	}
	return b.String()
}

func templatesMarkdown(data any) string {
	rows, _ := results(data)

	var b strings.Builder
	b.WriteString("# Templates\n\n")
	fmt.Fprintf(&b, "**Total Templates:** %d\n\n", len(rows))
	for _, r := range rows {
		t := asMap(r)
		def := ""
		if isDefault, _ := t["is_default"].(bool); isDefault {
			def = " (default)"
		}
		fmt.Fprintf(&b, "- **%s** (ID: %s) - Type: %s%s\n",
			text(t["name"]), text(t["id"]), text(t["type"]), def)
	}
	return b.String()
}
