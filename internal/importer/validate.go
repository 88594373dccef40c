package importer

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxReportedErrors = 100
	sampleContacts    = 20
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-']+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

func isPhone(s string) bool {
	_, ok := NormalizePhone(s)
	return ok
}

// NormalizeEmail lower-cases and trims an address, reporting whether it is well formed.
func NormalizeEmail(s string) (string, bool) {
	e := strings.ToLower(strings.TrimSpace(s))
	return e, emailPattern.MatchString(e)
}

// NormalizePhone converts a phone number to E.164. Ten digits are treated as
// North American, eleven digits starting with 1 gain a plus, and numbers
// already prefixed with + must carry 8 to 15 digits.
func NormalizePhone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case strings.HasPrefix(s, "+"):
		if len(d) >= 8 && len(d) <= 15 {
			return "+" + d, true
		}
	case len(d) == 10:
		return "+1" + d, true
	case len(d) == 11 && d[0] == '1':
		return "+" + d, true
	}
	return "", false
}

type Record struct {
	Row          int               `json:"row"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Company      string            `json:"company,omitempty"`
	Title        string            `json:"title,omitempty"`
	State        string            `json:"state,omitempty"`
	Timezone     string            `json:"timezone,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type Preview struct {
	Mapping       Mapping    `json:"mapping"`
	TotalRows     int        `json:"total_rows"`
	ValidRows     int        `json:"valid_rows"`
	InvalidRows   int        `json:"invalid_rows"`
	DuplicateRows int        `json:"duplicate_rows"`
	Errors        []RowError `json:"errors"`
	Sample        []Record   `json:"sample"`
}

type Result struct {
	Preview
	Records []Record `json:"-"`
}

// Process validates every row of t under m. Records holds the valid,
// non-duplicate rows in file order.
func Process(t *Table, m Mapping) *Result {
	res := &Result{Preview: Preview{
		Mapping:   m,
		TotalRows: len(t.Rows),
		Errors:    []RowError{},
		Sample:    []Record{},
	}}
	seenEmail := map[string]int{}
	seenPhone := map[string]int{}

	for _, row := range t.Rows {
		rec, errs := buildRecord(row, m)
		if len(errs) > 0 {
			res.InvalidRows++
			res.addErrors(errs...)
			continue
		}

		if rec.Email != "" {
			if first, ok := seenEmail[rec.Email]; ok {
				res.DuplicateRows++
				res.addErrors(RowError{Row: row.Number, Field: string(FieldEmail), Message: duplicateMessage(first)})
				continue
			}
		} else if first, ok := seenPhone[rec.Phone]; ok {
			res.DuplicateRows++
			res.addErrors(RowError{Row: row.Number, Field: string(FieldPhone), Message: duplicateMessage(first)})
			continue
		}
		if rec.Email != "" {
			seenEmail[rec.Email] = row.Number
		}
		if rec.Phone != "" {
			if _, ok := seenPhone[rec.Phone]; !ok {
				seenPhone[rec.Phone] = row.Number
			}
		}

		res.ValidRows++
		res.Records = append(res.Records, rec)
		if len(res.Sample) < sampleContacts {
			res.Sample = append(res.Sample, rec)
		}
	}
	return res
}

func duplicateMessage(first int) string {
	return "duplicate of row " + strconv.Itoa(first)
}

func (r *Result) addErrors(errs ...RowError) {
	for _, e := range errs {
		if len(r.Errors) >= maxReportedErrors {
			return
		}
		r.Errors = append(r.Errors, e)
	}
}

func buildRecord(row Row, m Mapping) (Record, []RowError) {
	rec := Record{Row: row.Number}
	var fullName, rawEmail, rawPhone string
	var errs []RowError

	for _, col := range m {
		v := row.cell(col.Index)
		if v == "" {
			continue
		}
		switch col.Field {
		case FieldFirstName:
			rec.FirstName = v
		case FieldLastName:
			rec.LastName = v
		case FieldFullName:
			fullName = v
		case FieldEmail:
			rawEmail = v
		case FieldPhone:
			rawPhone = v
		case FieldCompany:
			rec.Company = v
		case FieldTitle:
			rec.Title = v
		case FieldState:
			rec.State = strings.ToUpper(v)
		case FieldTimezone:
			rec.Timezone = v
		case FieldTags:
			rec.Tags = splitTags(v)
		case FieldCustom:
			if rec.CustomFields == nil {
				rec.CustomFields = map[string]string{}
			}
			rec.CustomFields[col.Key] = v
		}
	}

	if rec.FirstName == "" && rec.LastName == "" && fullName != "" {
		parts := strings.Fields(fullName)
		rec.FirstName = parts[0]
		rec.LastName = strings.Join(parts[1:], " ")
	}

	if rawEmail != "" {
		email, ok := NormalizeEmail(rawEmail)
		if !ok {
			errs = append(errs, RowError{Row: row.Number, Field: string(FieldEmail), Message: "invalid email " + rawEmail})
		} else {
			rec.Email = email
		}
	}
	if rawPhone != "" {
		phone, ok := NormalizePhone(rawPhone)
		if !ok {
			errs = append(errs, RowError{Row: row.Number, Field: string(FieldPhone), Message: "invalid phone " + rawPhone})
		} else {
			rec.Phone = phone
		}
	}
	if rawEmail == "" && rawPhone == "" {
		errs = append(errs, RowError{Row: row.Number, Message: "email or phone is required"})
	}
	return rec, errs
}

func splitTags(v string) []string {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	seen := map[string]bool{}
	var tags []string
	for _, f := range fields {
		tag := strings.TrimSpace(f)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}
	return tags
}
