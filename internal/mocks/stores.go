package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/draftforge/draftforge-api/internal/domain"
	"github.com/draftforge/draftforge-api/internal/store"
	"github.com/draftforge/draftforge-api/internal/task"
)

// MockTemplateStore implements store.TemplateStore for testing
type MockTemplateStore struct {
	GetByCodeFn         func(ctx context.Context, code string) (*domain.PromptTemplate, error)
	ListByContentTypeFn func(ctx context.Context, contentType domain.ContentType) ([]*domain.PromptTemplate, error)
	CreateFn            func(ctx context.Context, tmpl *domain.PromptTemplate) error
	UpdateFn            func(ctx context.Context, tmpl *domain.PromptTemplate) error
	DeleteFn            func(ctx context.Context, id uuid.UUID) error

	// Templates maps codes to templates, used when GetByCodeFn is nil
	Templates map[string]*domain.PromptTemplate
}

var _ store.TemplateStore = (*MockTemplateStore)(nil)

func (m *MockTemplateStore) GetByCode(ctx context.Context, code string) (*domain.PromptTemplate, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	if tmpl, ok := m.Templates[code]; ok {
		return tmpl, nil
	}
	return nil, store.ErrTemplateNotFound
}

func (m *MockTemplateStore) ListByContentType(
	ctx context.Context,
	contentType domain.ContentType,
) ([]*domain.PromptTemplate, error) {
	if m.ListByContentTypeFn != nil {
		return m.ListByContentTypeFn(ctx, contentType)
	}

	var out []*domain.PromptTemplate
	for _, tmpl := range m.Templates {
		if tmpl.ContentType == contentType {
			out = append(out, tmpl)
		}
	}
	return out, nil
}

func (m *MockTemplateStore) Create(ctx context.Context, tmpl *domain.PromptTemplate) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tmpl)
	}
	if m.Templates == nil {
		m.Templates = make(map[string]*domain.PromptTemplate)
	}
	m.Templates[tmpl.Code] = tmpl
	return nil
}

func (m *MockTemplateStore) Update(ctx context.Context, tmpl *domain.PromptTemplate) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, tmpl)
	}
	return nil
}

func (m *MockTemplateStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// MockProfileStore implements store.ProfileStore for testing
type MockProfileStore struct {
	GetActivePrimaryFn  func(ctx context.Context) (*domain.ProviderProfile, error)
	GetActiveFallbackFn func(ctx context.Context) (*domain.ProviderProfile, error)
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.ProviderProfile, error)
	CreateFn            func(ctx context.Context, profile *domain.ProviderProfile) error
	UpdateFn            func(ctx context.Context, profile *domain.ProviderProfile) error

	// Default responses used when the corresponding Fn is nil
	Primary  *domain.ProviderProfile
	Fallback *domain.ProviderProfile
}

var _ store.ProfileStore = (*MockProfileStore)(nil)

func (m *MockProfileStore) GetActivePrimary(ctx context.Context) (*domain.ProviderProfile, error) {
	if m.GetActivePrimaryFn != nil {
		return m.GetActivePrimaryFn(ctx)
	}
	if m.Primary == nil {
		return nil, store.ErrProfileNotFound
	}
	return m.Primary, nil
}

func (m *MockProfileStore) GetActiveFallback(ctx context.Context) (*domain.ProviderProfile, error) {
	if m.GetActiveFallbackFn != nil {
		return m.GetActiveFallbackFn(ctx)
	}
	return m.Fallback, nil
}

func (m *MockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProviderProfile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrProfileNotFound
}

func (m *MockProfileStore) Create(ctx context.Context, profile *domain.ProviderProfile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}
	return nil
}

func (m *MockProfileStore) Update(ctx context.Context, profile *domain.ProviderProfile) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, profile)
	}
	return nil
}

// MockDocumentStore implements store.DocumentStore for testing
type MockDocumentStore struct {
	SaveFn        func(ctx context.Context, doc *domain.GeneratedDocument) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.GeneratedDocument, error)
	ListByActorFn func(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]*domain.GeneratedDocument, error)

	// Saved collects documents passed to Save when SaveFn is nil
	Saved []*domain.GeneratedDocument
}

var _ store.DocumentStore = (*MockDocumentStore)(nil)

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.GeneratedDocument) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, doc)
	}
	m.Saved = append(m.Saved, doc)
	return nil
}

func (m *MockDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GeneratedDocument, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	for _, doc := range m.Saved {
		if doc.ID == id {
			return doc, nil
		}
	}
	return nil, store.ErrDocumentNotFound
}

func (m *MockDocumentStore) ListByActor(
	ctx context.Context,
	actorID uuid.UUID,
	limit, offset int,
) ([]*domain.GeneratedDocument, error) {
	if m.ListByActorFn != nil {
		return m.ListByActorFn(ctx, actorID, limit, offset)
	}

	var out []*domain.GeneratedDocument
	for _, doc := range m.Saved {
		if doc.ActorID == actorID {
			out = append(out, doc)
		}
	}
	return out, nil
}

// MockJobStore implements task.JobStore for testing
type MockJobStore struct {
	SaveJobFn           func(ctx context.Context, job task.Job) error
	UpdateJobStatusFn   func(ctx context.Context, jobID uuid.UUID, status task.JobStatus, errorMsg string, documentID uuid.UUID) error
	GetJobFn            func(ctx context.Context, jobID uuid.UUID) (*task.JobRecord, error)
	GetPendingJobsFn    func(ctx context.Context) ([]*task.JobRecord, error)
	GetProcessingJobsFn func(ctx context.Context, olderThan time.Duration) ([]*task.JobRecord, error)

	// Records maps job IDs to records, used when the Fn fields are nil
	Records map[uuid.UUID]*task.JobRecord
}

var _ task.JobStore = (*MockJobStore)(nil)

func (m *MockJobStore) SaveJob(ctx context.Context, job task.Job) error {
	if m.SaveJobFn != nil {
		return m.SaveJobFn(ctx, job)
	}
	if m.Records == nil {
		m.Records = make(map[uuid.UUID]*task.JobRecord)
	}
	now := time.Now().UTC()
	m.Records[job.ID()] = &task.JobRecord{
		ID:        job.ID(),
		Type:      job.Type(),
		Payload:   job.Payload(),
		Status:    job.Status(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return nil
}

func (m *MockJobStore) UpdateJobStatus(
	ctx context.Context,
	jobID uuid.UUID,
	status task.JobStatus,
	errorMsg string,
	documentID uuid.UUID,
) error {
	if m.UpdateJobStatusFn != nil {
		return m.UpdateJobStatusFn(ctx, jobID, status, errorMsg, documentID)
	}
	record, ok := m.Records[jobID]
	if !ok {
		return store.ErrJobNotFound
	}
	record.Status = status
	record.ErrorMessage = errorMsg
	record.DocumentID = documentID
	record.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MockJobStore) GetJob(ctx context.Context, jobID uuid.UUID) (*task.JobRecord, error) {
	if m.GetJobFn != nil {
		return m.GetJobFn(ctx, jobID)
	}
	record, ok := m.Records[jobID]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	return record, nil
}

func (m *MockJobStore) GetPendingJobs(ctx context.Context) ([]*task.JobRecord, error) {
	if m.GetPendingJobsFn != nil {
		return m.GetPendingJobsFn(ctx)
	}
	var out []*task.JobRecord
	for _, record := range m.Records {
		if record.Status == task.JobStatusPending {
			out = append(out, record)
		}
	}
	return out, nil
}

func (m *MockJobStore) GetProcessingJobs(
	ctx context.Context,
	olderThan time.Duration,
) ([]*task.JobRecord, error) {
	if m.GetProcessingJobsFn != nil {
		return m.GetProcessingJobsFn(ctx, olderThan)
	}
	var out []*task.JobRecord
	for _, record := range m.Records {
		if record.Status == task.JobStatusProcessing {
			out = append(out, record)
		}
	}
	return out, nil
}
