package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type fakeSessions struct {
	users map[int64]*model.User
	err   error
}

func (f *fakeSessions) ValidateSession(_ context.Context, sessionID int64) (*model.User, *service.UserContext, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	user, ok := f.users[sessionID]
	if !ok {
		return nil, nil, service.ErrSessionExpired
	}
	return user, &service.UserContext{IsPlatformAdmin: user.IsPlatformAdmin}, nil
}

type fakeOrgs map[int64]*model.Organization

func (f fakeOrgs) Get(_ context.Context, orgID int64) (*model.Organization, error) {
	if org, ok := f[orgID]; ok {
		return org, nil
	}
	return nil, service.ErrOrganizationNotFound
}

type membershipKey struct{ orgID, userID int64 }

type fakeMembers map[membershipKey]model.Role

func (f fakeMembers) Get(_ context.Context, orgID, userID int64) (*model.Membership, error) {
	if role, ok := f[membershipKey{orgID, userID}]; ok {
		return &model.Membership{OrganizationID: orgID, UserID: userID, Role: role}, nil
	}
	return nil, service.ErrMemberNotFound
}

type fakeLimiter struct {
	keys  []string
	allow bool
	wait  time.Duration
}

func (f *fakeLimiter) Allow(key string) (bool, time.Duration) {
	f.keys = append(f.keys, key)
	return f.allow, f.wait
}

func perform(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var _ = Describe("RequireAuth", func() {
	var (
		router   *gin.Engine
		sessions *fakeSessions
	)

	BeforeEach(func() {
		sessions = &fakeSessions{users: map[int64]*model.User{7: {ID: 1, Email: "ada@example.com"}}}
		router = gin.New()
		router.GET("/me", middleware.RequireAuth(sessions), func(c *gin.Context) {
			user := middleware.GetUser(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"email": user.Email, "session": middleware.GetSessionID(c.Request.Context())})
		})
	})

	It("attaches the user for a valid session header", func() {
		w := perform(router, http.MethodGet, "/me", map[string]string{middleware.SessionIDHeader: "7"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("ada@example.com"))
	})

	It("accepts the session cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "7"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	DescribeTable("rejects unusable sessions",
		func(header string, want int) {
			headers := map[string]string{}
			if header != "" {
				headers[middleware.SessionIDHeader] = header
			}
			Expect(perform(router, http.MethodGet, "/me", headers).Code).To(Equal(want))
		},
		Entry("missing", "", http.StatusUnauthorized),
		Entry("not a number", "abc", http.StatusUnauthorized),
		Entry("expired", "8", http.StatusUnauthorized),
	)

	It("returns 500 when the session store fails", func() {
		sessions.err = errors.New("db down")
		w := perform(router, http.MethodGet, "/me", map[string]string{middleware.SessionIDHeader: "7"})
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})

var _ = Describe("RequireOrgMember", func() {
	var (
		router   *gin.Engine
		sessions *fakeSessions
		orgs     fakeOrgs
		members  fakeMembers
	)

	BeforeEach(func() {
		sessions = &fakeSessions{users: map[int64]*model.User{
			1: {ID: 10},
			2: {ID: 20},
			3: {ID: 30, IsPlatformAdmin: true},
		}}
		orgs = fakeOrgs{
			100: {ID: 100, Status: model.OrganizationStatusActive},
			200: {ID: 200, Status: model.OrganizationStatusSuspended},
		}
		members = fakeMembers{
			{100, 10}: model.RoleMember,
			{200, 10}: model.RoleOwner,
		}
		router = gin.New()
		tenant := router.Group("/orgs/:org_id", middleware.RequireAuth(sessions), middleware.RequireOrgMember(orgs, members))
		tenant.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"role": middleware.GetRole(c.Request.Context())})
		})
		tenant.DELETE("", middleware.RequireRole(model.RoleAdmin), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
	})

	session := func(id string) map[string]string {
		return map[string]string{middleware.SessionIDHeader: id}
	}

	It("admits members with their role", func() {
		w := perform(router, http.MethodGet, "/orgs/100", session("1"))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"member"`))
	})

	It("forbids non-members", func() {
		Expect(perform(router, http.MethodGet, "/orgs/100", session("2")).Code).To(Equal(http.StatusForbidden))
	})

	It("lets platform admins act as owners", func() {
		w := perform(router, http.MethodGet, "/orgs/100", session("3"))
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"owner"`))
	})

	It("closes suspended organizations even to their owners", func() {
		w := perform(router, http.MethodGet, "/orgs/200", session("1"))
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(w.Body.String()).To(ContainSubstring("organization_suspended"))
	})

	It("returns 404 for unknown organizations and 400 for bad ids", func() {
		Expect(perform(router, http.MethodGet, "/orgs/999", session("1")).Code).To(Equal(http.StatusNotFound))
		Expect(perform(router, http.MethodGet, "/orgs/abc", session("1")).Code).To(Equal(http.StatusBadRequest))
	})

	It("enforces the minimum role", func() {
		Expect(perform(router, http.MethodDelete, "/orgs/100", session("1")).Code).To(Equal(http.StatusForbidden))
		Expect(perform(router, http.MethodDelete, "/orgs/100", session("3")).Code).To(Equal(http.StatusNoContent))
	})
})

var _ = Describe("RequireAdmin", func() {
	var router *gin.Engine

	BeforeEach(func() {
		sessions := &fakeSessions{users: map[int64]*model.User{
			1: {ID: 10},
			3: {ID: 30, IsPlatformAdmin: true},
		}}
		router = gin.New()
		router.GET("/admin", middleware.RequireAdmin(sessions, "secret-key"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	})

	DescribeTable("guards admin routes",
		func(headers map[string]string, want int) {
			Expect(perform(router, http.MethodGet, "/admin", headers).Code).To(Equal(want))
		},
		Entry("api key header", map[string]string{middleware.AdminAPIKeyHeader: "secret-key"}, http.StatusOK),
		Entry("bearer api key", map[string]string{"Authorization": "Bearer secret-key"}, http.StatusOK),
		Entry("wrong api key", map[string]string{middleware.AdminAPIKeyHeader: "nope"}, http.StatusUnauthorized),
		Entry("platform admin session", map[string]string{middleware.SessionIDHeader: "3"}, http.StatusOK),
		Entry("regular user session", map[string]string{middleware.SessionIDHeader: "1"}, http.StatusForbidden),
		Entry("nothing", map[string]string{}, http.StatusUnauthorized),
	)

	It("reports an unconfigured admin API", func() {
		r := gin.New()
		r.GET("/admin", middleware.RequireAdmin(&fakeSessions{}, ""), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := perform(r, http.MethodGet, "/admin", map[string]string{middleware.AdminAPIKeyHeader: "x"})
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})
})

var _ = Describe("RateLimit", func() {
	It("answers 429 with Retry-After when the bucket is empty", func() {
		limiter := &fakeLimiter{allow: false, wait: 1500 * time.Millisecond}
		router := gin.New()
		router.GET("/x", middleware.RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(router, http.MethodGet, "/x", nil)
		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(w.Header().Get("Retry-After")).To(Equal("2"))
		Expect(limiter.keys[0]).To(HavePrefix("ip:"))
	})

	It("keys on the resolved organization", func() {
		limiter := &fakeLimiter{allow: true}
		router := gin.New()
		router.GET("/x", func(c *gin.Context) {
			ctx := middleware.WithOrganization(c.Request.Context(), &model.Organization{ID: 42}, model.RoleMember)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		}, middleware.RateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

		Expect(perform(router, http.MethodGet, "/x", nil).Code).To(Equal(http.StatusOK))
		Expect(limiter.keys).To(ConsistOf("org:42"))
	})
})

var _ = Describe("Recovery and RequestID", func() {
	It("turns panics into 500s", func() {
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(*gin.Context) { panic("boom") })

		w := perform(router, http.MethodGet, "/boom", nil)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
	})

	It("echoes an incoming request id and mints one otherwise", func() {
		router := gin.New()
		router.Use(middleware.RequestID())
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := perform(router, http.MethodGet, "/x", map[string]string{middleware.RequestIDHeader: "req-1"})
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-1"))

		w = perform(router, http.MethodGet, "/x", nil)
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(HaveLen(36))
	})
})
