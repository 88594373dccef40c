package importer_test

import (
	"bytes"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"switchyard.app/platform/internal/importer"
)

func fieldOf(m importer.Mapping, header string) importer.Field {
	for _, c := range m {
		if c.Header == header {
			return c.Field
		}
	}
	return ""
}

var _ = Describe("Parse", func() {
	It("sniffs semicolon delimiters and keeps spreadsheet row numbers", func() {
		csv := "\xef\xbb\xbfName;Email\n\nAda Lovelace;ada@example.com\nAlan Turing;alan@example.com\n"
		t, err := importer.Parse("contacts.csv", strings.NewReader(csv))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Header).To(Equal([]string{"Name", "Email"}))
		Expect(t.Rows).To(HaveLen(2))
		Expect(t.Rows[0].Number).To(Equal(3))
		Expect(t.Rows[1].Cells).To(Equal([]string{"Alan Turing", "alan@example.com"}))
	})

	It("reads tab separated files", func() {
		t, err := importer.Parse("x.tsv", strings.NewReader("email\tphone\nada@example.com\t5551234567\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Rows[0].Cells).To(Equal([]string{"ada@example.com", "5551234567"}))
	})

	It("reads the first sheet with data from a workbook", func() {
		f := excelize.NewFile()
		defer f.Close()
		_, err := f.NewSheet("Contacts")
		Expect(err).NotTo(HaveOccurred())
		Expect(f.SetSheetRow("Contacts", "A1", &[]any{"First Name", "Last Name", "Phone"})).To(Succeed())
		Expect(f.SetSheetRow("Contacts", "A2", &[]any{"Grace", "Hopper", "+44 20 7946 0958"})).To(Succeed())
		buf, err := f.WriteToBuffer()
		Expect(err).NotTo(HaveOccurred())

		t, err := importer.Parse("book.XLSX", bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Header).To(Equal([]string{"First Name", "Last Name", "Phone"}))
		Expect(t.Rows).To(HaveLen(1))
		Expect(t.Rows[0].Number).To(Equal(2))
	})

	It("rejects unknown extensions", func() {
		_, err := importer.Parse("contacts.pdf", strings.NewReader("x"))
		Expect(err).To(MatchError(importer.ErrUnsupportedFormat))
	})

	It("rejects empty files", func() {
		_, err := importer.Parse("contacts.csv", strings.NewReader("\n\n"))
		Expect(err).To(MatchError(importer.ErrEmptyFile))
	})

	It("enforces the row limit", func() {
		var b strings.Builder
		b.WriteString("email\n")
		for i := 0; i <= importer.MaxRows; i++ {
			fmt.Fprintf(&b, "u%d@example.com\n", i)
		}
		_, err := importer.Parse("big.csv", strings.NewReader(b.String()))
		Expect(err).To(MatchError(importer.ErrTooManyRows))
	})
})

var _ = Describe("GuessMapping", func() {
	It("maps headers and sniffs unlabeled columns", func() {
		t := &importer.Table{
			Header: []string{"Given Name", "Surname", "E-mail Address", "Mobile", "Organization", "Job Title", "Tags", "Col A", "Industry"},
			Rows: []importer.Row{
				{Number: 2, Cells: []string{"Ada", "Lovelace", "ada@example.com", "555 123 4567", "Analytical", "CTO", "vip", "x", "SaaS"}},
			},
		}
		m := importer.GuessMapping(t)
		Expect(fieldOf(m, "Given Name")).To(Equal(importer.FieldFirstName))
		Expect(fieldOf(m, "Surname")).To(Equal(importer.FieldLastName))
		Expect(fieldOf(m, "E-mail Address")).To(Equal(importer.FieldEmail))
		Expect(fieldOf(m, "Mobile")).To(Equal(importer.FieldPhone))
		Expect(fieldOf(m, "Organization")).To(Equal(importer.FieldCompany))
		Expect(fieldOf(m, "Job Title")).To(Equal(importer.FieldTitle))
		Expect(fieldOf(m, "Tags")).To(Equal(importer.FieldTags))
		Expect(fieldOf(m, "Industry")).To(Equal(importer.FieldCustom))
		Expect(m[8].Key).To(Equal("industry"))
	})

	It("detects email and phone columns from their values", func() {
		t := &importer.Table{
			Header: []string{"contact", "a", "b"},
			Rows: []importer.Row{
				{Number: 2, Cells: []string{"Ada", "ada@example.com", "(555) 123-4567"}},
				{Number: 3, Cells: []string{"Alan", "alan@example.com", "1-555-987-6543"}},
			},
		}
		m := importer.GuessMapping(t)
		Expect(fieldOf(m, "contact")).To(Equal(importer.FieldFullName))
		Expect(fieldOf(m, "a")).To(Equal(importer.FieldEmail))
		Expect(fieldOf(m, "b")).To(Equal(importer.FieldPhone))
	})

	It("applies caller overrides by header", func() {
		t := &importer.Table{Header: []string{"Email", "Notes"}}
		m := importer.GuessMapping(t).WithOverrides(map[string]importer.Field{"notes": importer.FieldSkip})
		Expect(fieldOf(m, "Notes")).To(Equal(importer.FieldSkip))
		Expect(fieldOf(m, "Email")).To(Equal(importer.FieldEmail))
	})
})

var _ = Describe("NormalizePhone", func() {
	DescribeTable("E.164 conversion",
		func(in, want string, ok bool) {
			got, valid := importer.NormalizePhone(in)
			Expect(valid).To(Equal(ok))
			Expect(got).To(Equal(want))
		},
		Entry("ten digits", "(555) 123-4567", "+15551234567", true),
		Entry("eleven digits with country code", "1 555 123 4567", "+15551234567", true),
		Entry("international", "+44 20 7946 0958", "+442079460958", true),
		Entry("too short international", "+1234567", "", false),
		Entry("eleven digits without leading one", "25551234567", "", false),
		Entry("empty", "", "", false),
	)
})

var _ = Describe("Process", func() {
	parse := func(csv string) *importer.Result {
		t, err := importer.Parse("in.csv", strings.NewReader(csv))
		Expect(err).NotTo(HaveOccurred())
		return importer.Process(t, importer.GuessMapping(t))
	}

	It("validates rows and reports duplicates", func() {
		res := parse(strings.Join([]string{
			"Full Name,Email,Phone,Tags",
			"Ada Lovelace,ADA@example.com,,vip; beta",
			"Alan Turing,not-an-email,,",
			"Nobody,,,",
			"Ada Again,ada@example.com,,",
			"Grace Brewster Hopper,,5551234567,",
			"Grace Hopper,,555-123-4567,",
		}, "\n"))

		Expect(res.TotalRows).To(Equal(6))
		Expect(res.ValidRows).To(Equal(2))
		Expect(res.InvalidRows).To(Equal(2))
		Expect(res.DuplicateRows).To(Equal(2))
		Expect(res.Records).To(HaveLen(2))

		ada := res.Records[0]
		Expect(ada.Row).To(Equal(2))
		Expect(ada.FirstName).To(Equal("Ada"))
		Expect(ada.LastName).To(Equal("Lovelace"))
		Expect(ada.Email).To(Equal("ada@example.com"))
		Expect(ada.Tags).To(Equal([]string{"vip", "beta"}))

		grace := res.Records[1]
		Expect(grace.LastName).To(Equal("Brewster Hopper"))
		Expect(grace.Phone).To(Equal("+15551234567"))

		Expect(res.Errors).To(ContainElement(importer.RowError{Row: 3, Field: "email", Message: "invalid email not-an-email"}))
		Expect(res.Errors).To(ContainElement(importer.RowError{Row: 4, Message: "email or phone is required"}))
		Expect(res.Errors).To(ContainElement(importer.RowError{Row: 5, Field: "email", Message: "duplicate of row 2"}))
		Expect(res.Errors).To(ContainElement(importer.RowError{Row: 7, Field: "phone", Message: "duplicate of row 6"}))
	})

	It("caps reported errors and sample size", func() {
		var b strings.Builder
		b.WriteString("email\n")
		for i := 0; i < 150; i++ {
			b.WriteString("bad\n")
		}
		for i := 0; i < 30; i++ {
			fmt.Fprintf(&b, "user%d@example.com\n", i)
		}
		res := parse(b.String())
		Expect(res.Errors).To(HaveLen(100))
		Expect(res.InvalidRows).To(Equal(150))
		Expect(res.Sample).To(HaveLen(20))
		Expect(res.Records).To(HaveLen(30))
	})
})
