package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClassifyTransactionType", func() {
	DescribeTable("keyword classification",
		func(text, expected string) {
			Expect(ClassifyTransactionType(text)).To(Equal(expected))
		},
		Entry("cash deposit machine header", "CASH DEPOSIT MACHINE\nBRANCH 042", TypeCDM),
		Entry("deposit successful footer", "Transaction complete. Deposit successful.", TypeCDM),
		Entry("atm withdrawal", "ATM WITHDRAWAL\nRM 500.00", TypeATMTransfer),
		Entry("fund transfer", "FUND TRANSFER TO ACCOUNT 1234567890", TypeATMTransfer),
		Entry("no indicators", "THANK YOU FOR BANKING WITH US", TypeUnknown),
	)

	When("only a terminal ID hints at the slip type", func() {
		It("should pick CDM from deposit wording", func() {
			Expect(ClassifyTransactionType("TERMINAL ID: 8841\ncash credited to account")).To(Equal(TypeCDM))
		})

		It("should pick ATM_TRANSFER from debit wording", func() {
			Expect(ClassifyTransactionType("TERMINAL ID: 8841\namount debit from account")).To(Equal(TypeATMTransfer))
		})
	})
})

var _ = Describe("DetectSpecialText", func() {
	DescribeTable("marker detection",
		func(text, expectedMarker string, expectedFound bool) {
			marker, found := DetectSpecialText(text)
			Expect(found).To(Equal(expectedFound))
			Expect(marker).To(Equal(expectedMarker))
		},
		Entry("clean HPWIN", "ref 123 HPWIN", MarkerHPWin, true),
		Entry("clean HPWINVIP", "HPWINVIP written at bottom", MarkerHPWinVIP, true),
		Entry("digit substitution", "hpw1n", MarkerHPWin, true),
		Entry("vv misread", "HPVVIN noted", MarkerHPWin, true),
		Entry("spaced out VIP", "H P W I N V I P", MarkerHPWinVIP, true),
		Entry("spaced segments", "hp win vip", MarkerHPWinVIP, true),
		Entry("dashed", "HP-WIN", MarkerHPWin, true),
		Entry("nothing", "ordinary deposit slip text", "", false),
	)

	It("should prefer HPWINVIP when both markers could match", func() {
		marker, found := DetectSpecialText("hpwin vip")
		Expect(found).To(BeTrue())
		Expect(marker).To(Equal(MarkerHPWinVIP))
	})
})
