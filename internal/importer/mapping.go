package importer

import (
	"regexp"
	"strings"
)

type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldFullName  Field = "full_name"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldCompany   Field = "company"
	FieldTitle     Field = "title"
	FieldState     Field = "state"
	FieldTags      Field = "tags"
	FieldTimezone  Field = "timezone"
	FieldCustom    Field = "custom"
	FieldSkip      Field = "skip"
)

func (f Field) Valid() bool {
	switch f {
	case FieldFirstName, FieldLastName, FieldFullName, FieldEmail, FieldPhone, FieldCompany,
		FieldTitle, FieldState, FieldTags, FieldTimezone, FieldCustom, FieldSkip:
		return true
	}
	return false
}

type Column struct {
	Index  int    `json:"index"`
	Header string `json:"header"`
	Field  Field  `json:"field"`
	// Key names the custom field when Field is FieldCustom.
	Key string `json:"key,omitempty"`
}

type Mapping []Column

// headerPatterns is checked in order; the first column to match a field claims it.
var headerPatterns = []struct {
	field Field
	re    *regexp.Regexp
}{
	{FieldFirstName, regexp.MustCompile(`^(first|given|fore)_?name$|^first$|^fname$`)},
	{FieldLastName, regexp.MustCompile(`^(last|sur|family)_?name$|^last$|^lname$`)},
	{FieldFullName, regexp.MustCompile(`^(full_?)?name$|^contact(_name)?$|^display_?name$`)},
	{FieldEmail, regexp.MustCompile(`e_?mail`)},
	{FieldPhone, regexp.MustCompile(`phone|mobile|cell|^tel`)},
	{FieldCompany, regexp.MustCompile(`company|organi[sz]ation|business|employer|^account(_name)?$`)},
	{FieldTitle, regexp.MustCompile(`^(job_?)?title$|position|^role$`)},
	{FieldState, regexp.MustCompile(`^state$|province|^region$`)},
	{FieldTags, regexp.MustCompile(`^tags?$|^labels?$|^groups?$`)},
	{FieldTimezone, regexp.MustCompile(`time_?zone|^tz$`)},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeHeader(h string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(h), "_"), "_")
}

const sampleSize = 20

// GuessMapping assigns fields from header names, then by sampling values of
// unclaimed columns for emails and phones. Everything else becomes a custom field.
func GuessMapping(t *Table) Mapping {
	m := make(Mapping, len(t.Header))
	claimed := map[Field]bool{}

	for i, h := range t.Header {
		m[i] = Column{Index: i, Header: h}
		norm := normalizeHeader(h)
		if norm == "" {
			continue
		}
		for _, p := range headerPatterns {
			if !claimed[p.field] && p.re.MatchString(norm) {
				m[i].Field = p.field
				claimed[p.field] = true
				break
			}
		}
	}

	for i := range m {
		if m[i].Field != "" {
			continue
		}
		switch {
		case !claimed[FieldEmail] && columnLooksLike(t, i, isEmail):
			m[i].Field = FieldEmail
			claimed[FieldEmail] = true
		case !claimed[FieldPhone] && columnLooksLike(t, i, isPhone):
			m[i].Field = FieldPhone
			claimed[FieldPhone] = true
		case normalizeHeader(m[i].Header) == "":
			m[i].Field = FieldSkip
		default:
			m[i].Field = FieldCustom
			m[i].Key = normalizeHeader(m[i].Header)
		}
	}
	return m
}

// columnLooksLike reports whether at least 80% of sampled non-empty values satisfy fn.
func columnLooksLike(t *Table, col int, fn func(string) bool) bool {
	seen, hits := 0, 0
	for _, r := range t.Rows {
		v := r.cell(col)
		if v == "" {
			continue
		}
		seen++
		if fn(v) {
			hits++
		}
		if seen == sampleSize {
			break
		}
	}
	return seen > 0 && hits*5 >= seen*4
}

// WithOverrides replaces guessed fields for the named headers (case-insensitive).
func (m Mapping) WithOverrides(overrides map[string]Field) Mapping {
	if len(overrides) == 0 {
		return m
	}
	byHeader := make(map[string]Field, len(overrides))
	for h, f := range overrides {
		byHeader[strings.ToLower(strings.TrimSpace(h))] = f
	}
	out := make(Mapping, len(m))
	copy(out, m)
	for i := range out {
		f, ok := byHeader[strings.ToLower(out[i].Header)]
		if !ok {
			continue
		}
		out[i].Field = f
		out[i].Key = ""
		if f == FieldCustom {
			out[i].Key = normalizeHeader(out[i].Header)
		}
	}
	return out
}
