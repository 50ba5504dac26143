package html

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// attributeProperties maps attribute names whose property name is not the
// camel-cased attribute name.
//
//nolint:gochecknoglobals // Read-only lookup table.
var attributeProperties = map[string]string{
	"class":           "className",
	"for":             "htmlFor",
	"http-equiv":      "httpEquiv",
	"accept-charset":  "acceptCharset",
	"tabindex":        "tabIndex",
	"readonly":        "readOnly",
	"maxlength":       "maxLength",
	"minlength":       "minLength",
	"colspan":         "colSpan",
	"rowspan":         "rowSpan",
	"contenteditable": "contentEditable",
	"crossorigin":     "crossOrigin",
	"datetime":        "dateTime",
	"novalidate":      "noValidate",
	"autofocus":       "autoFocus",
	"srcset":          "srcSet",
}

// booleanProperties are present-or-absent attributes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var booleanProperties = map[string]bool{
	"allowFullScreen": true, "async": true, "autoFocus": true, "checked": true,
	"controls": true, "default": true, "defer": true, "disabled": true,
	"hidden": true, "loop": true, "multiple": true, "muted": true,
	"noValidate": true, "open": true, "readOnly": true, "required": true,
	"reversed": true, "selected": true,
}

// numberProperties hold integers when their value parses as one.
//
//nolint:gochecknoglobals // Read-only lookup table.
var numberProperties = map[string]bool{
	"tabIndex": true, "colSpan": true, "rowSpan": true, "maxLength": true,
	"minLength": true, "start": true, "size": true, "span": true,
	"cols": true, "rows": true,
}

// listProperties split on whitespace.
//
//nolint:gochecknoglobals // Read-only lookup table.
var listProperties = map[string]bool{
	"className": true, "rel": true, "accessKey": true, "headers": true,
	"ping": true, "sandbox": true,
}

// PropertyName returns the hast property name for an HTML attribute:
// "class" is className, data-foo-bar is dataFooBar, aria-label is
// ariaLabel.
func PropertyName(attr string) string {
	attr = strings.ToLower(attr)
	if name, ok := attributeProperties[attr]; ok {
		return name
	}
	if !strings.Contains(attr, "-") {
		return attr
	}

	parts := strings.Split(attr, "-")
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}

// Properties converts element attributes to hast property values.
// Namespaced attributes keep their prefix, as in "xlink:href".
func Properties(attrs []html.Attribute) map[string]any {
	if len(attrs) == 0 {
		return nil
	}

	props := make(map[string]any, len(attrs))
	for _, attr := range attrs {
		key := attr.Key
		if attr.Namespace != "" {
			props[attr.Namespace+":"+key] = attr.Val
			continue
		}

		name := PropertyName(key)
		switch {
		case booleanProperties[name]:
			props[name] = true
		case listProperties[name]:
			props[name] = strings.Fields(attr.Val)
		case numberProperties[name]:
			if n, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil {
				props[name] = n
			} else {
				props[name] = attr.Val
			}
		default:
			props[name] = attr.Val
		}
	}
	return props
}
