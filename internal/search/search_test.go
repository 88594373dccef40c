package search_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/search"
)

type person struct {
	name    string
	company string
	age     int
}

var people = []person{
	{"Ada Lovelace", "Analytical", 36},
	{"Grace Hopper", "Navy", 85},
	{"Alan Turing", "Bletchley", 41},
	{"Adam Smith", "Wealth", 67},
}

func fields(p person) []string { return []string{p.name, p.company} }

var _ = Describe("helpers", func() {
	It("filters", func() {
		out := search.Filter(people, func(p person) bool { return p.age > 50 })
		Expect(out).To(HaveLen(2))
	})

	It("sorts a copy", func() {
		out := search.SortBy(people, func(p person) int { return p.age }, true)
		Expect(out[0].name).To(Equal("Grace Hopper"))
		Expect(people[0].name).To(Equal("Ada Lovelace"))
	})

	Describe("Paginate", func() {
		It("returns a window with has_more", func() {
			p := search.Paginate(people, 2, 1)
			Expect(p.Items).To(HaveLen(2))
			Expect(p.Total).To(Equal(4))
			Expect(p.HasMore).To(BeTrue())
		})

		It("returns an empty page past the end", func() {
			p := search.Paginate(people, 2, 10)
			Expect(p.Items).To(BeEmpty())
			Expect(p.HasMore).To(BeFalse())
		})

		It("applies the default limit", func() {
			Expect(search.Paginate(people, 0, 0).Limit).To(Equal(search.DefaultLimit))
			Expect(search.Paginate(people, 1000, 0).Limit).To(Equal(search.MaxLimit))
		})
	})

	Describe("MatchScore", func() {
		It("prefers exact over prefix over infix", func() {
			exact := search.MatchScore("ada", "Ada Lovelace")
			prefix := search.MatchScore("ad", "Ada Lovelace")
			infix := search.MatchScore("love", "Ada Lovelace")
			Expect(exact).To(BeNumerically(">", prefix))
			Expect(prefix).To(BeNumerically(">", search.MatchScore("velace", "Ada Lovelace")))
			Expect(infix).To(BeNumerically(">", 0))
		})

		It("requires every token to match", func() {
			Expect(search.MatchScore("ada navy", "Ada Lovelace", "Analytical")).To(BeZero())
			Expect(search.MatchScore("ada analytical", "Ada Lovelace", "Analytical")).To(BeNumerically(">", 0.9))
		})

		It("is case-insensitive and zero for empty queries", func() {
			Expect(search.MatchScore("GRACE", "grace hopper")).To(BeNumerically("~", 1, 0.01))
			Expect(search.MatchScore("  ", "grace")).To(BeZero())
		})
	})

	Describe("Rank", func() {
		It("keeps matches best first", func() {
			out := search.Rank(people, "ada", fields)
			Expect(out).To(HaveLen(2))
			Expect(out[0].name).To(Equal("Ada Lovelace"))
			Expect(out[1].name).To(Equal("Adam Smith"))
		})

		It("returns everything for an empty query", func() {
			Expect(search.Rank(people, "", fields)).To(HaveLen(4))
		})
	})
})

var _ = Describe("NewContactDocument", func() {
	It("flattens optional fields", func() {
		email := "ada@example.com"
		c := &model.Contact{
			ID: 42, OrganizationID: 7, FirstName: "Ada", LastName: "Lovelace",
			Email: &email, Status: model.ContactStatusLead, CreatedAt: time.Unix(100, 0),
		}
		doc := search.NewContactDocument(c)
		Expect(doc.ID).To(Equal("42"))
		Expect(doc.Name).To(Equal("Ada Lovelace"))
		Expect(doc.Email).To(Equal(email))
		Expect(doc.Phone).To(BeEmpty())
		Expect(doc.Tags).To(BeEmpty())
		Expect(doc.CreatedAt).To(Equal(int64(100)))
	})
})
