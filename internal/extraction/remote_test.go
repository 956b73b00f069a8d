package extraction

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Remote", func() {
	var (
		server *ghttp.Server
		remote *Remote
		data   *SlipData
		err    error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		var newErr error
		remote, newErr = NewRemote(server.URL() + "/upload")
		Expect(newErr).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		data, err = remote.ExtractSlip(context.Background(), "slip.png", []byte("fake-image-bytes"), "image/png")
	})

	When("the service succeeds", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest("POST", "/upload"),
				func(w http.ResponseWriter, r *http.Request) {
					Expect(r.Header.Get("Content-Type")).To(HavePrefix("multipart/form-data"))
					Expect(r.ParseMultipartForm(1 << 20)).To(Succeed())
					Expect(r.MultipartForm.File["file"]).To(HaveLen(1))
					Expect(r.MultipartForm.File["file"][0].Filename).To(Equal("slip.png"))
				},
				ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
					"success": true,
					"data": map[string]any{
						"transaction_type": "CDM",
						"account_number":   "12345678901",
						"date":             "2024-01-01",
						"amount":           100.00,
						"has_special_text": false,
					},
				}),
			))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the extracted fields", func() {
			Expect(data.TransactionType).To(HaveValue(Equal("CDM")))
			Expect(data.Amount).To(HaveValue(Equal("100")))
			Expect(data.Verified()).To(BeFalse())
		})

		It("should make exactly one request", func() {
			Expect(server.ReceivedRequests()).To(HaveLen(1))
		})
	})

	When("the service reports a failure", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusInternalServerError, map[string]any{
				"success": false,
				"error":   "unreadable image",
			}))
		})

		It("should return a ServiceError with the service message", func() {
			var serviceErr *ServiceError
			Expect(errors.As(err, &serviceErr)).To(BeTrue())
			Expect(serviceErr.Message).To(Equal("unreadable image"))
		})

		It("should not return data", func() {
			Expect(data).To(BeNil())
		})
	})

	When("the service returns a non-JSON error page", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusBadGateway, "<html>Bad Gateway</html>"))
		})

		It("should return a generic transport failure", func() {
			Expect(err).To(MatchError(ContainSubstring("unexpected response")))
		})
	})

	When("the service returns success without data", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
				"success": true,
			}))
		})

		It("should return a generic transport failure", func() {
			Expect(err).To(MatchError(ContainSubstring("unexpected response")))
		})
	})

	When("the service is unreachable", func() {
		BeforeEach(func() {
			server.Close()
		})

		It("should report the service as unreachable", func() {
			Expect(err).To(MatchError(ContainSubstring("extraction service unreachable")))
		})
	})
})

var _ = Describe("NewRemote", func() {
	It("should require an endpoint", func() {
		_, err := NewRemote("")
		Expect(err).To(HaveOccurred())
	})

	It("should append the default upload path to a bare base URL", func() {
		remote, err := NewRemote("http://localhost:5001")
		Expect(err).NotTo(HaveOccurred())
		Expect(remote.endpoint).To(Equal("http://localhost:5001/upload"))
	})

	It("should keep an explicit path", func() {
		remote, err := NewRemote("http://localhost:5001/extract")
		Expect(err).NotTo(HaveOccurred())
		Expect(remote.endpoint).To(Equal("http://localhost:5001/extract"))
	})
})
