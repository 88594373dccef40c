package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/calltoken"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

type mockCampaignStore struct {
	store.CampaignStore
	running     []model.Campaign
	byID        map[int64]*model.Campaign
	promoteFn   func(ctx context.Context, now time.Time) ([]model.Campaign, error)
	statusCalls map[int64]model.CampaignStatus
}

func (m *mockCampaignStore) GetByID(_ context.Context, orgID, id int64) (*model.Campaign, error) {
	c, ok := m.byID[id]
	if !ok || c.OrganizationID != orgID {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (m *mockCampaignStore) Get(_ context.Context, id int64) (*model.Campaign, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (m *mockCampaignStore) PromoteScheduled(ctx context.Context, now time.Time) ([]model.Campaign, error) {
	if m.promoteFn != nil {
		return m.promoteFn(ctx, now)
	}
	return nil, nil
}

func (m *mockCampaignStore) ListRunning(context.Context) ([]model.Campaign, error) {
	return m.running, nil
}

func (m *mockCampaignStore) SetStatus(_ context.Context, id int64, status model.CampaignStatus) (*model.Campaign, error) {
	if m.statusCalls == nil {
		m.statusCalls = map[int64]model.CampaignStatus{}
	}
	m.statusCalls[id] = status
	return &model.Campaign{ID: id, Status: status}, nil
}

type outcomeCall struct {
	status  model.CampaignContactStatus
	next    *time.Time
	outcome string
}

// Dispatch runs concurrently, so the enrollment and call fakes lock.
type mockEnrollmentStore struct {
	store.CampaignContactStore
	mu           sync.Mutex
	due          []model.CampaignContact
	inProgress   int64
	inProgressFn func(campaignID int64) (int64, error)
	open         int64
	dispatched   []int64
	claimed      map[int64]bool
	outcomes     map[int64]outcomeCall
	enrolled     map[int64]bool
}

func (m *mockEnrollmentStore) GetByID(_ context.Context, id int64) (*model.CampaignContact, error) {
	for _, e := range m.due {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

// Enroll reports false for contacts already enrolled.
func (m *mockEnrollmentStore) Enroll(_ context.Context, cc *model.CampaignContact) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enrolled == nil {
		m.enrolled = map[int64]bool{}
	}
	if m.enrolled[cc.ContactID] {
		return false, nil
	}
	m.enrolled[cc.ContactID] = true
	return true, nil
}

func (m *mockEnrollmentStore) CountInProgress(_ context.Context, campaignID int64) (int64, error) {
	if m.inProgressFn != nil {
		return m.inProgressFn(campaignID)
	}
	return m.inProgress, nil
}

func (m *mockEnrollmentStore) CountOpen(context.Context, int64) (int64, error) {
	return m.open, nil
}

func (m *mockEnrollmentStore) ListDue(_ context.Context, campaignID int64, _ int32, _ time.Time, _ int32) ([]model.CampaignContact, error) {
	var out []model.CampaignContact
	for _, e := range m.due {
		if e.CampaignID == campaignID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentStore) MarkDispatched(_ context.Context, id int64) (*model.CampaignContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimed[id] {
		return nil, store.ErrNotFound
	}
	m.dispatched = append(m.dispatched, id)
	for _, e := range m.due {
		if e.ID == id {
			e.Status = model.CampaignContactStatusInProgress
			e.Attempts++
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockEnrollmentStore) SetOutcome(_ context.Context, id int64, status model.CampaignContactStatus, next *time.Time, outcome *string) (*model.CampaignContact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcomes == nil {
		m.outcomes = map[int64]outcomeCall{}
	}
	oc := outcomeCall{status: status, next: next}
	if outcome != nil {
		oc.outcome = *outcome
	}
	m.outcomes[id] = oc
	return &model.CampaignContact{ID: id, Status: status}, nil
}

type mockCallRecordStore struct {
	store.CallRecordStore
	mu          sync.Mutex
	created     []*model.CallRecord
	records     map[int64]*model.CallRecord
	providerIDs map[int64]string
	statuses    map[int64]model.CallStatus
	completed   []*model.CallRecord
	summaries   map[int64]string
}

func (m *mockCallRecordStore) GetByID(_ context.Context, id int64) (*model.CallRecord, error) {
	c, ok := m.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (m *mockCallRecordStore) GetByProviderCallID(_ context.Context, provider model.VoiceProvider, callID string) (*model.CallRecord, error) {
	for _, c := range m.records {
		if c.Provider == provider && c.ProviderCallID != nil && *c.ProviderCallID == callID {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockCallRecordStore) Complete(_ context.Context, c *model.CallRecord) error {
	m.completed = append(m.completed, c)
	return nil
}

func (m *mockCallRecordStore) SetSummary(_ context.Context, id int64, summary string, outcome *string) (*model.CallRecord, error) {
	if m.summaries == nil {
		m.summaries = map[int64]string{}
	}
	m.summaries[id] = summary
	return &model.CallRecord{ID: id, Summary: &summary, Outcome: outcome}, nil
}

func (m *mockCallRecordStore) Create(_ context.Context, c *model.CallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, c)
	return nil
}

func (m *mockCallRecordStore) SetProviderCallID(_ context.Context, id int64, callID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.providerIDs == nil {
		m.providerIDs = map[int64]string{}
	}
	m.providerIDs[id] = callID
	return nil
}

func (m *mockCallRecordStore) UpdateStatus(_ context.Context, id int64, status model.CallStatus, _ *time.Time) (*model.CallRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statuses == nil {
		m.statuses = map[int64]model.CallStatus{}
	}
	m.statuses[id] = status
	return &model.CallRecord{ID: id, Status: status}, nil
}

type dialingProvider struct {
	mu      sync.Mutex
	placed  []voice.CallRequest
	failFor map[string]bool
}

func (p *dialingProvider) Name() model.VoiceProvider { return model.VoiceProviderVapi }

func (p *dialingProvider) PlaceCall(_ context.Context, req voice.CallRequest) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failFor[req.ToNumber] {
		return "", errors.New("provider unavailable")
	}
	p.placed = append(p.placed, req)
	return "pc_" + req.ToNumber, nil
}

func (p *dialingProvider) Authenticate(http.Header, []byte) error { return nil }

func (p *dialingProvider) ParseEvent([]byte) (*voice.CallEvent, error) { return nil, voice.ErrIgnoredEvent }

var _ = Describe("CallScheduler", func() {
	var (
		sched       service.CallScheduler
		campaigns   *mockCampaignStore
		enrollments *mockEnrollmentStore
		contacts    *mockContactStore
		calls       *mockCallRecordStore
		provider    *dialingProvider
		signer      *calltoken.Signer
		ctx         context.Context
	)

	campaign := func(id int64) model.Campaign {
		return model.Campaign{
			ID:                   id,
			OrganizationID:       1,
			Status:               model.CampaignStatusRunning,
			Provider:             model.VoiceProviderVapi,
			AssistantID:          "asst_1",
			FromNumber:           "+14155550000",
			MaxAttempts:          3,
			RetryIntervalMinutes: 60,
			MaxConcurrent:        5,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		campaigns = &mockCampaignStore{running: []model.Campaign{campaign(10)}}
		enrollments = &mockEnrollmentStore{open: 1}
		calls = &mockCallRecordStore{}
		provider = &dialingProvider{failFor: map[string]bool{}}
		signer = calltoken.NewSigner("test-secret", time.Hour)
		contacts = &mockContactStore{
			listByIDsFn: func(_ context.Context, orgID int64, ids []int64) ([]model.Contact, error) {
				return []model.Contact{
					{ID: 100, OrganizationID: orgID, FirstName: "Ada", Phone: strPtr("+14155550100")},
					{ID: 101, OrganizationID: orgID, FirstName: "Grace", Phone: strPtr("+14155550101"), DoNotCall: true},
					{ID: 102, OrganizationID: orgID, FirstName: "Linus", Phone: strPtr("+14155550102")},
				}, nil
			},
		}
		enrollments.due = []model.CampaignContact{
			{ID: 1, CampaignID: 10, OrganizationID: 1, ContactID: 100, Status: model.CampaignContactStatusPending},
			{ID: 2, CampaignID: 10, OrganizationID: 1, ContactID: 101, Status: model.CampaignContactStatusPending},
			{ID: 3, CampaignID: 10, OrganizationID: 1, ContactID: 102, Status: model.CampaignContactStatusPending},
		}
		sched = service.NewCallScheduler(
			campaigns,
			enrollments,
			contacts,
			calls,
			&mockOrganizationStore{},
			voice.NewRegistry(provider),
			signer,
		)
	})

	It("dispatches callable enrollments and skips do-not-call contacts", func() {
		res, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Dispatched).To(Equal(2))
		Expect(res.Skipped).To(Equal(1))
		Expect(res.Completed).To(BeZero())

		Expect(enrollments.dispatched).To(ConsistOf(int64(1), int64(3)))
		Expect(enrollments.outcomes).To(HaveKeyWithValue(int64(2), outcomeCall{
			status:  model.CampaignContactStatusSkipped,
			outcome: "do_not_call",
		}))

		Expect(calls.created).To(HaveLen(2))
		for _, c := range calls.created {
			Expect(c.Status).To(Equal(model.CallStatusQueued))
			Expect(*c.CampaignID).To(Equal(int64(10)))
			Expect(calls.providerIDs).To(HaveKey(c.ID))
		}
	})

	It("binds each placed call to its record through the call token", func() {
		_, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(provider.placed).To(HaveLen(2))

		for _, req := range provider.placed {
			Expect(req.AssistantID).To(Equal("asst_1"))
			Expect(req.FromNumber).To(Equal("+14155550000"))

			b, err := signer.Verify(req.CallToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(b.OrganizationID).To(Equal(int64(1)))
			Expect(b.CampaignID).To(Equal(int64(10)))
			Expect(b.CallID).NotTo(BeZero())
		}
	})

	It("does not dispatch beyond the free concurrency slots", func() {
		enrollments.inProgress = 4

		res, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Dispatched).To(Equal(1))
		Expect(res.Skipped).To(Equal(1))
		Expect(calls.created).To(HaveLen(1))
	})

	It("reschedules an enrollment when the provider refuses the call", func() {
		provider.failFor["+14155550102"] = true

		res, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Dispatched).To(Equal(1))
		Expect(res.Failed).To(Equal(1))

		oc := enrollments.outcomes[3]
		Expect(oc.status).To(Equal(model.CampaignContactStatusPending))
		Expect(oc.outcome).To(Equal("dispatch_failed"))
		Expect(oc.next).NotTo(BeNil())
		Expect(*oc.next).To(BeTemporally("~", time.Now().Add(time.Hour), time.Minute))

		Expect(calls.statuses).To(HaveLen(1))
		for _, status := range calls.statuses {
			Expect(status).To(Equal(model.CallStatusFailed))
		}
	})

	It("fails an enrollment whose last attempt could not be placed", func() {
		provider.failFor["+14155550102"] = true
		enrollments.due[2].Attempts = 2

		_, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(enrollments.outcomes[3].status).To(Equal(model.CampaignContactStatusFailed))
		Expect(enrollments.outcomes[3].next).To(BeNil())
	})

	It("leaves an enrollment another scheduler already claimed", func() {
		enrollments.claimed = map[int64]bool{3: true}

		res, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Dispatched).To(Equal(1))
		Expect(res.Failed).To(BeZero())

		Expect(enrollments.dispatched).To(ConsistOf(int64(1)))
		Expect(enrollments.outcomes).NotTo(HaveKey(int64(3)))
		Expect(calls.created).To(HaveLen(1))
		Expect(provider.placed).To(HaveLen(1))
		Expect(provider.placed[0].ToNumber).To(Equal("+14155550100"))
	})

	It("completes a campaign with no open enrollments", func() {
		enrollments.due = nil
		enrollments.open = 0

		res, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Completed).To(Equal(1))
		Expect(campaigns.statusCalls).To(HaveKeyWithValue(int64(10), model.CampaignStatusCompleted))
	})

	It("keeps ticking other campaigns when one fails", func() {
		campaigns.running = []model.Campaign{campaign(9), campaign(10)}
		enrollments.inProgressFn = func(campaignID int64) (int64, error) {
			if campaignID == 9 {
				return 0, errors.New("db timeout")
			}
			return 0, nil
		}

		res, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Dispatched).To(Equal(2))
	})

	It("counts promoted campaigns", func() {
		campaigns.promoteFn = func(_ context.Context, _ time.Time) ([]model.Campaign, error) {
			return []model.Campaign{campaign(11)}, nil
		}

		res, err := sched.Tick(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Promoted).To(Equal(1))
	})
})
