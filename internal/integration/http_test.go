package integration_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/integration"
)

var _ = Describe("DoJSON", func() {
	It("sends JSON and decodes the response", func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Header.Get("Authorization")).To(Equal("Bearer k"))
			var in map[string]string
			Expect(json.NewDecoder(r.Body).Decode(&in)).To(Succeed())
			_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["name"]})
		}))
		DeferCleanup(srv.Close)

		var out struct{ Echo string }
		err := integration.DoJSON(context.Background(), integration.NewHTTPClient(0), integration.Request{
			Service: "test", Method: http.MethodPost, URL: srv.URL,
			Headers: map[string]string{"Authorization": "Bearer k"},
			Body:    map[string]string{"name": "ada"},
		}, &out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Echo).To(Equal("ada"))
	})

	It("retries server errors and surfaces client errors", func() {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"bad number"}`))
		}))
		DeferCleanup(srv.Close)

		client := integration.NewHTTPClient(2)
		client.RetryWaitMin = 0
		client.RetryWaitMax = 0
		err := integration.DoJSON(context.Background(), client, integration.Request{
			Service: "test", Method: http.MethodGet, URL: srv.URL,
		}, nil)

		var apiErr *integration.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusUnprocessableEntity))
		Expect(apiErr.Body).To(ContainSubstring("bad number"))
		Expect(hits.Load()).To(Equal(int32(2)))
	})
})

var _ = Describe("HMAC helpers", func() {
	It("round-trips a hex signature", func() {
		body := []byte(`{"a":1}`)
		sig := integration.SignHex("s3cret", body)
		Expect(integration.VerifyHexHMAC("s3cret", body, sig)).To(BeTrue())
		Expect(integration.VerifyHexHMAC("other", body, sig)).To(BeFalse())
		Expect(integration.VerifyHexHMAC("s3cret", body, "zz")).To(BeFalse())
		Expect(integration.VerifyHexHMAC("", body, sig)).To(BeFalse())
	})
})
