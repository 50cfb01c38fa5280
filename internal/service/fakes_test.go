package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

var (
	adminActor   = domain.Session{SubjectID: "admin-1", Role: domain.RoleAdmin}
	auditorActor = domain.Session{SubjectID: "auditor-1", Role: domain.RoleAuditor}
	managerActor = domain.Session{SubjectID: "manager-1", Role: domain.RoleManager}
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if normalizeEmail(user.Email) == normalizeEmail(email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type fakeAuditRepo struct {
	audits map[string]*domain.Audit
}

func newFakeAuditRepo(audits ...domain.Audit) *fakeAuditRepo {
	repo := &fakeAuditRepo{audits: map[string]*domain.Audit{}}
	for i := range audits {
		repo.audits[audits[i].ID] = &audits[i]
	}
	return repo
}

func (r *fakeAuditRepo) Create(_ context.Context, audit *domain.Audit) error {
	copied := *audit
	r.audits[audit.ID] = &copied
	return nil
}

func (r *fakeAuditRepo) Upsert(ctx context.Context, audit *domain.Audit) error {
	return r.Create(ctx, audit)
}

func (r *fakeAuditRepo) UpdateStatus(_ context.Context, id string, status domain.AuditStatus) error {
	audit, ok := r.audits[id]
	if !ok {
		return pgx.ErrNoRows
	}
	audit.Status = status
	return nil
}

func (r *fakeAuditRepo) GetByID(_ context.Context, id string) (*domain.Audit, error) {
	audit, ok := r.audits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *audit
	return &copied, nil
}

func (r *fakeAuditRepo) List(_ context.Context) ([]domain.Audit, error) {
	var out []domain.Audit
	for _, audit := range r.audits {
		out = append(out, *audit)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *fakeAuditRepo) ListUpcoming(_ context.Context, limit int) ([]domain.Audit, error) {
	var out []domain.Audit
	for _, audit := range r.audits {
		if audit.Status != domain.AuditStatusCompleted {
			out = append(out, *audit)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeChecklistRepo struct {
	checklists map[string]*domain.Checklist
}

func newFakeChecklistRepo() *fakeChecklistRepo {
	return &fakeChecklistRepo{checklists: map[string]*domain.Checklist{}}
}

func (r *fakeChecklistRepo) Create(_ context.Context, checklist *domain.Checklist) error {
	copied := *checklist
	r.checklists[checklist.ID] = &copied
	return nil
}

func (r *fakeChecklistRepo) Upsert(ctx context.Context, checklist *domain.Checklist) error {
	return r.Create(ctx, checklist)
}

func (r *fakeChecklistRepo) Update(_ context.Context, checklist *domain.Checklist) error {
	if _, ok := r.checklists[checklist.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *checklist
	r.checklists[checklist.ID] = &copied
	return nil
}

func (r *fakeChecklistRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.checklists[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.checklists, id)
	return nil
}

func (r *fakeChecklistRepo) GetByID(_ context.Context, id string) (*domain.Checklist, error) {
	checklist, ok := r.checklists[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *checklist
	return &copied, nil
}

func (r *fakeChecklistRepo) List(_ context.Context) ([]domain.Checklist, error) {
	var out []domain.Checklist
	for _, checklist := range r.checklists {
		out = append(out, *checklist)
	}
	return out, nil
}

type fakeDocumentRepo struct {
	documents map[string]*domain.Document
}

func newFakeDocumentRepo(docs ...domain.Document) *fakeDocumentRepo {
	repo := &fakeDocumentRepo{documents: map[string]*domain.Document{}}
	for i := range docs {
		repo.documents[docs[i].ID] = &docs[i]
	}
	return repo
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *domain.Document) error {
	copied := *doc
	r.documents[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepo) Upsert(ctx context.Context, doc *domain.Document) error {
	return r.Create(ctx, doc)
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *domain.Document) error {
	if _, ok := r.documents[doc.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *doc
	r.documents[doc.ID] = &copied
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.documents[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.documents, id)
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := r.documents[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeDocumentRepo) List(_ context.Context) ([]domain.Document, error) {
	var out []domain.Document
	for _, doc := range r.documents {
		out = append(out, *doc)
	}
	return out, nil
}

type fakeReportRepo struct {
	reports   map[string]*domain.Report
	nextFinID int64
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*domain.Report{}}
}

func (r *fakeReportRepo) Create(_ context.Context, report *domain.Report) error {
	for i := range report.Findings {
		r.nextFinID++
		report.Findings[i].ID = r.nextFinID
		report.Findings[i].ReportID = report.ID
	}
	copied := *report
	copied.Findings = append([]domain.ReportFinding(nil), report.Findings...)
	r.reports[report.ID] = &copied
	return nil
}

func (r *fakeReportRepo) Upsert(ctx context.Context, report *domain.Report) error {
	return r.Create(ctx, report)
}

func (r *fakeReportRepo) AddFinding(_ context.Context, finding *domain.ReportFinding) error {
	report, ok := r.reports[finding.ReportID]
	if !ok {
		return pgx.ErrNoRows
	}
	r.nextFinID++
	finding.ID = r.nextFinID
	report.Findings = append(report.Findings, *finding)
	return nil
}

func (r *fakeReportRepo) UpdateStatus(_ context.Context, id string, status domain.ReportStatus) error {
	report, ok := r.reports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	report.Status = status
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *report
	copied.Findings = append([]domain.ReportFinding(nil), report.Findings...)
	return &copied, nil
}

func (r *fakeReportRepo) List(_ context.Context) ([]domain.Report, error) {
	var out []domain.Report
	for _, report := range r.reports {
		out = append(out, *report)
	}
	return out, nil
}

type fakeActivityRepo struct {
	mu         sync.Mutex
	activities []domain.Activity
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity.ID = int64(len(r.activities) + 1)
	activity.CreatedAt = time.Now()
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *fakeActivityRepo) ListRecent(_ context.Context, limit int) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Activity
	for i := len(r.activities) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.activities[i])
	}
	return out, nil
}

func (r *fakeActivityRepo) descriptions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, a := range r.activities {
		out = append(out, a.Description)
	}
	return out
}

type fakeDashboardRepo struct {
	counts domain.DashboardCounts
	err    error
}

func (r *fakeDashboardRepo) Counts(context.Context) (domain.DashboardCounts, error) {
	return r.counts, r.err
}
