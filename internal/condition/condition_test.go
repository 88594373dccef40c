package condition_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/condition"
)

var doc = []byte(`{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"status": "lead",
	"state": "CA",
	"tags": ["vip", "Newsletter"],
	"custom_fields": {"industry": "SaaS", "employees": "120", "notes": ""},
	"score": 42,
	"do_not_call": false
}`)

func match(raw string) bool {
	GinkgoHelper()
	ok, err := condition.Match([]byte(raw), doc)
	Expect(err).NotTo(HaveOccurred())
	return ok
}

var _ = Describe("Evaluate", func() {
	It("matches everything for empty conditions", func() {
		Expect(match(``)).To(BeTrue())
		Expect(match(`null`)).To(BeTrue())
		Expect(match(`{}`)).To(BeTrue())
	})

	DescribeTable("leaf operators",
		func(raw string, want bool) {
			Expect(match(raw)).To(Equal(want))
		},
		Entry("equals is case-insensitive", `{"field":"status","operator":"equals","value":"LEAD"}`, true),
		Entry("not_equals", `{"field":"status","operator":"not_equals","value":"customer"}`, true),
		Entry("nested custom field", `{"field":"custom_fields.industry","operator":"equals","value":"saas"}`, true),
		Entry("contains substring", `{"field":"email","operator":"contains","value":"EXAMPLE"}`, true),
		Entry("contains array membership", `{"field":"tags","operator":"contains","value":"newsletter"}`, true),
		Entry("contains misses partial array element", `{"field":"tags","operator":"contains","value":"news"}`, false),
		Entry("not_contains", `{"field":"tags","operator":"not_contains","value":"churn-risk"}`, true),
		Entry("starts_with", `{"field":"name","operator":"starts_with","value":"ada"}`, true),
		Entry("ends_with", `{"field":"email","operator":"ends_with","value":".COM"}`, true),
		Entry("greater_than number", `{"field":"score","operator":"greater_than","value":40}`, true),
		Entry("greater_than numeric string", `{"field":"custom_fields.employees","operator":"greater_than","value":"100"}`, true),
		Entry("less_than", `{"field":"score","operator":"less_than","value":10}`, false),
		Entry("numeric operator on text", `{"field":"name","operator":"greater_than","value":1}`, false),
		Entry("regex", `{"field":"email","operator":"regex","value":"^ada@"}`, true),
		Entry("is_empty blank string", `{"field":"custom_fields.notes","operator":"is_empty"}`, true),
		Entry("is_empty missing field", `{"field":"phone","operator":"is_empty"}`, true),
		Entry("is_empty false", `{"field":"tags","operator":"is_empty","value":false}`, true),
		Entry("equals bool", `{"field":"do_not_call","operator":"equals","value":false}`, true),
		Entry("missing field never equals", `{"field":"company","operator":"equals","value":"acme"}`, false),
	)

	It("combines all, any and not", func() {
		Expect(match(`{"all":[
			{"field":"status","operator":"equals","value":"lead"},
			{"any":[
				{"field":"state","operator":"equals","value":"NY"},
				{"field":"state","operator":"equals","value":"CA"}
			]},
			{"not":{"field":"tags","operator":"contains","value":"blocked"}}
		]}`)).To(BeTrue())
	})

	It("treats empty all as true and empty any as false", func() {
		Expect(match(`{"all":[]}`)).To(BeTrue())
		Expect(match(`{"any":[]}`)).To(BeFalse())
	})

	It("rejects trees nested deeper than the limit", func() {
		raw := strings.Repeat(`{"not":`, condition.MaxDepth) + `{"field":"status","operator":"equals","value":"lead"}` + strings.Repeat(`}`, condition.MaxDepth)
		_, err := condition.Match([]byte(raw), doc)
		Expect(err).To(MatchError(condition.ErrTooDeep))
	})

	It("returns an error for malformed json", func() {
		_, err := condition.Match([]byte(`{"all":`), doc)
		Expect(err).To(MatchError(condition.ErrInvalidCondition))
	})
})

var _ = Describe("Validate", func() {
	parse := func(raw string) *condition.Node {
		n, err := condition.Parse([]byte(raw))
		Expect(err).NotTo(HaveOccurred())
		return n
	}

	It("accepts a well formed tree", func() {
		Expect(condition.Validate(parse(`{"any":[{"field":"email","operator":"regex","value":"@acme\\.io$"}]}`))).To(Succeed())
	})

	It("accepts nil", func() {
		Expect(condition.Validate(nil)).To(Succeed())
	})

	It("rejects unknown operators", func() {
		err := condition.Validate(parse(`{"field":"email","operator":"like","value":"x"}`))
		Expect(err).To(MatchError(condition.ErrInvalidCondition))
	})

	It("rejects bad regex", func() {
		err := condition.Validate(parse(`{"field":"email","operator":"regex","value":"("}`))
		Expect(err).To(MatchError(condition.ErrInvalidCondition))
	})

	It("rejects leaves without a field", func() {
		err := condition.Validate(parse(`{"operator":"equals","value":"x"}`))
		Expect(err).To(MatchError(condition.ErrInvalidCondition))
	})

	It("rejects mixed nodes", func() {
		err := condition.Validate(parse(`{"all":[],"field":"email","operator":"equals"}`))
		Expect(err).To(MatchError(condition.ErrInvalidCondition))
	})

	It("rejects excessive depth", func() {
		raw := strings.Repeat(`{"all":[`, condition.MaxDepth+1) + `{"field":"a","operator":"equals","value":1}` + strings.Repeat(`]}`, condition.MaxDepth+1)
		Expect(condition.Validate(parse(raw))).To(MatchError(condition.ErrTooDeep))
	})
})
