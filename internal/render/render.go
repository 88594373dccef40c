// Package render fills template placeholders and converts email bodies to HTML.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"switchyard.app/platform/internal/model"
)

var placeholder = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+(?:\.[a-zA-Z0-9_]+)*)\s*\}\}`)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

type Vars map[string]string

// Substitute replaces {{ name }} placeholders. Unknown names render empty and
// are returned, sorted and de-duplicated.
func Substitute(text string, vars Vars) (string, []string) {
	missing := map[string]bool{}
	out := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		v, ok := vars[name]
		if !ok {
			missing[name] = true
		}
		return v
	})
	return out, sortedKeys(missing)
}

type Rendered struct {
	Subject string   `json:"subject,omitempty"`
	Body    string   `json:"body"`
	HTML    string   `json:"html,omitempty"`
	Missing []string `json:"missing_variables"`
}

// Template renders subject and body. Email bodies are markdown and also rendered to HTML.
func Template(t *model.Template, vars Vars) (*Rendered, error) {
	body, missingBody := Substitute(t.Body, vars)
	r := &Rendered{Body: body}

	missing := map[string]bool{}
	for _, m := range missingBody {
		missing[m] = true
	}
	if t.Subject != nil {
		subject, missingSubject := Substitute(*t.Subject, vars)
		r.Subject = subject
		for _, m := range missingSubject {
			missing[m] = true
		}
	}
	r.Missing = sortedKeys(missing)

	if t.Kind == model.TemplateKindEmail {
		html, err := Markdown(body)
		if err != nil {
			return nil, err
		}
		r.HTML = html
	}
	return r, nil
}

// Markdown converts markdown to HTML. Raw HTML in the source is omitted.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}

// ContactVars exposes a contact and its organization to templates as
// contact.* , custom.* and organization.name.
func ContactVars(c *model.Contact, org *model.Organization) Vars {
	v := Vars{}
	if c != nil {
		v["contact.first_name"] = c.FirstName
		v["contact.last_name"] = c.LastName
		v["contact.full_name"] = c.FullName()
		v["contact.email"] = deref(c.Email)
		v["contact.phone"] = deref(c.Phone)
		v["contact.company"] = deref(c.Company)
		v["contact.title"] = deref(c.Title)
		v["contact.state"] = deref(c.State)
		v["contact.status"] = string(c.Status)
		for k, val := range c.CustomFields {
			v["custom."+k] = val
		}
	}
	if org != nil {
		v["organization.name"] = org.Name
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
