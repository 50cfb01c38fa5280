package main

import (
	"time"

	"github.com/spec-kit/audit-tracker/internal/domain"
)

func day(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

var sampleUsers = []domain.User{
	{Name: "Ada Admin", Email: "admin@example.test", Role: domain.RoleAdmin},
	{Name: "Alice Johnson", Email: "auditor@example.test", Role: domain.RoleAuditor},
	{Name: "Mark Manager", Email: "manager@example.test", Role: domain.RoleManager},
}

var sampleAudits = []domain.Audit{
	{ID: "AUD-001", Name: "Q3 Financial Statement Audit", AuditorName: "Alice Johnson", StartDate: day("2024-07-15"), EndDate: day("2024-08-15"), Status: domain.AuditStatusInProgress},
	{ID: "AUD-002", Name: "IT Security Compliance Check", AuditorName: "Bob Williams", StartDate: day("2024-08-01"), EndDate: day("2024-08-31"), Status: domain.AuditStatusScheduled},
	{ID: "AUD-003", Name: "Branch Operations Review (Downtown)", AuditorName: "Charlie Brown", StartDate: day("2024-06-20"), EndDate: day("2024-07-10"), Status: domain.AuditStatusCompleted},
	{ID: "AUD-004", Name: "AML Policy Adherence Audit", AuditorName: "Diana Prince", StartDate: day("2024-07-25"), EndDate: day("2024-08-25"), Status: domain.AuditStatusScheduled},
	{ID: "AUD-005", Name: "Q2 Customer Data Privacy Audit", AuditorName: "Alice Johnson", StartDate: day("2024-05-10"), EndDate: day("2024-06-10"), Status: domain.AuditStatusCompleted},
}

var sampleChecklists = []domain.Checklist{
	{ID: "CHK-FIN-01", Name: "Quarterly Financial Closing", Category: "Finance", LastUpdated: day("2024-06-28")},
	{ID: "CHK-IT-03", Name: "Server Security Hardening", Category: "IT Security", LastUpdated: day("2024-07-05")},
	{ID: "CHK-OPS-02", Name: "New Employee Onboarding", Category: "Operations", LastUpdated: day("2024-05-15")},
	{ID: "CHK-CMP-05", Name: "AML Transaction Monitoring", Category: "Compliance", LastUpdated: day("2024-07-11")},
	{ID: "CHK-HR-01", Name: "Annual Performance Review", Category: "Human Resources", LastUpdated: day("2024-04-30")},
}

var sampleDocuments = []domain.Document{
	{ID: "DOC-POL-001", Title: "Information Security Policy", Type: "Policy", Version: "v3.2", UploadDate: day("2024-01-15")},
	{ID: "DOC-PRC-004", Title: "Incident Response Procedure", Type: "Procedure", Version: "v2.1", UploadDate: day("2024-03-22")},
	{ID: "DOC-EVD-102", Title: "Q2 Firewall Configuration Logs", Type: "Evidence", Version: "N/A", UploadDate: day("2024-07-01")},
	{ID: "DOC-RPT-034", Title: "Penetration Test Report - May 2024", Type: "Report", Version: "v1.0", UploadDate: day("2024-06-05")},
	{ID: "DOC-POL-002", Title: "Data Privacy Policy", Type: "Policy", Version: "v1.5", UploadDate: day("2023-11-20")},
}

func sampleReports() []domain.Report {
	return []domain.Report{
		{
			ID:                "RPT-2024-001",
			AuditID:           "AUD-003",
			Title:             "Q2 Branch Operations Review",
			Date:              day("2024-07-12"),
			Status:            domain.ReportStatusFinalized,
			Summary:           ptr("The audit of the Downtown branch operations, conducted from June 20, 2024, to July 10, 2024, found operations to be largely compliant with bank policies. Three minor findings were identified and corrective actions have been recommended."),
			ComplianceScore:   ptr(98),
			ComplianceDetails: ptr("3 findings out of 150 checklist items."),
			Findings: []domain.ReportFinding{
				{Title: "Finding 1: Cash handling logs were not consistently filled out at end of day.", Recommendation: "Implement mandatory daily supervisor sign-off on cash logs."},
				{Title: "Finding 2: Physical security checklist for the vault was missed on two occasions.", Recommendation: "Add automated reminders for security checklist completion."},
			},
		},
		{
			ID:                "RPT-2024-002",
			AuditID:           "AUD-005",
			Title:             "Q2 Customer Data Privacy Audit",
			Date:              day("2024-06-15"),
			Status:            domain.ReportStatusFinalized,
			Summary:           ptr("The Q2 Customer Data Privacy Audit revealed full compliance with all regulations. No findings were identified."),
			ComplianceScore:   ptr(100),
			ComplianceDetails: ptr("0 findings out of 80 checklist items."),
		},
		{
			ID:      "RPT-2024-003",
			AuditID: "AUD-001",
			Title:   "Q3 Financial Statement Audit",
			Date:    day("2024-08-16"),
			Status:  domain.ReportStatusDraft,
			Summary: ptr("Draft report in progress. Initial findings indicate potential discrepancies in revenue recognition."),
		},
	}
}
