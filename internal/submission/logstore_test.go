package submission

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltStore", func() {
	var store *BoltStore

	BeforeEach(func() {
		dbPath := filepath.Join(GinkgoT().TempDir(), "test.db")
		var err error
		store, err = NewBoltStore(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	Describe("Read", func() {
		When("no snapshot has been written", func() {
			It("should report no snapshot", func() {
				_, ok, err := store.Read()
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		When("a snapshot has been written", func() {
			It("should return it", func() {
				Expect(store.Write([]byte(`[{"id":"a"}]`))).To(Succeed())

				snapshot, ok, err := store.Read()
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
				Expect(snapshot).To(Equal([]byte(`[{"id":"a"}]`)))
			})
		})
	})

	Describe("Write", func() {
		It("should overwrite the previous snapshot", func() {
			Expect(store.Write([]byte(`[1]`))).To(Succeed())
			Expect(store.Write([]byte(`[1,2]`))).To(Succeed())

			snapshot, ok, err := store.Read()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(snapshot).To(Equal([]byte(`[1,2]`)))
		})
	})

	Describe("Delete", func() {
		It("should remove the snapshot", func() {
			Expect(store.Write([]byte(`[1]`))).To(Succeed())
			Expect(store.Delete()).To(Succeed())

			_, ok, err := store.Read()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("should not fail on an absent snapshot", func() {
			Expect(store.Delete()).To(Succeed())
		})
	})
})
