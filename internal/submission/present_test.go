package submission

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FormatKey", func() {
	DescribeTable("title-casing keys",
		func(key, expected string) {
			Expect(FormatKey(key)).To(Equal(expected))
		},
		Entry("underscored", "account_number", "Account Number"),
		Entry("single word", "date", "Date"),
		Entry("three words", "special_text_found", "Special Text Found"),
		Entry("already spaced", "transaction type", "Transaction Type"),
	)
})

var _ = Describe("FormatValue", func() {
	DescribeTable("display rules",
		func(value any, expected string) {
			Expect(FormatValue(value)).To(Equal(expected))
		},
		Entry("absent", nil, "N/A"),
		Entry("true", true, "Yes"),
		Entry("false", false, "No"),
		Entry("number", float64(42), "42"),
		Entry("decimal number", 100.5, "100.5"),
		Entry("string", "CDM", "CDM"),
	)
})

var _ = Describe("Render", func() {
	It("should render every present field in order", func() {
		data := mustSlipData(`{"transaction_type": "CDM", "account_number": "12345", "date": "2024-01-01", "amount": "100.00", "has_special_text": false}`)

		rows := Render(data)
		Expect(rows).To(Equal([]RenderedField{
			{Key: "transaction_type", Label: "Transaction Type", Value: "CDM"},
			{Key: "account_number", Label: "Account Number", Value: "12345"},
			{Key: "date", Label: "Date", Value: "2024-01-01"},
			{Key: "amount", Label: "Amount", Value: "100.00"},
			{Key: "has_special_text", Label: "Has Special Text", Value: "No"},
		}))
	})

	It("should render unknown keys generically", func() {
		data := mustSlipData(`{"reference": "TXN-42", "has_special_text": true, "special_text_found": null}`)

		rows := Render(data)
		Expect(rows).To(Equal([]RenderedField{
			{Key: "has_special_text", Label: "Has Special Text", Value: "Yes"},
			{Key: "reference", Label: "Reference", Value: "TXN-42"},
			{Key: "special_text_found", Label: "Special Text Found", Value: "N/A"},
		}))
	})
})
