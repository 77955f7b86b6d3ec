// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/sitetrack/internal/model"
	"github.com/olegiv/sitetrack/internal/patch"
)

// projectColumns is the canonical column list for project SELECTs. Keep the
// order in sync with scanProject.
const projectColumns = `id, name,
	suburb, street, state, stream, classification, year, status,
	client_name, client_email, client_phone,
	client1_name, client1_email, client1_phone, client1_active,
	client2_name, client2_email, client2_phone, client2_active,
	client3_name, client3_email, client3_phone, client3_active,
	contract_status, contract_sent_date, contract_completed_date,
	supporting_documents_status, supporting_documents_sent_date, supporting_documents_completed_date,
	water_declaration_status, water_declaration_sent_date, water_declaration_completed_date,
	site_visit_status, site_visit_date, site_visit_time,
	window_order_status, window_order_date, window_order_delivery_date, window_order_pdf_path,
	drawings_status, drawings_sent_date, drawings_completed_date,
	colours_status, colours_sent_date, colours_completed_date,
	planning_status, planning_submitted_date, planning_approved_date,
	energy_report_status, energy_report_sent_date, energy_report_completed_date,
	footing_certification_status, footing_certification_sent_date, footing_certification_completed_date,
	building_permit_status, building_permit_submitted_date, building_permit_approved_date,
	proposal_pdf_path, notes, project_log,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Name,
		&p.Suburb, &p.Street, &p.State, &p.Stream, &p.Classification, &p.Year, &p.Status,
		&p.ClientName, &p.ClientEmail, &p.ClientPhone,
		&p.Client1Name, &p.Client1Email, &p.Client1Phone, &p.Client1Active,
		&p.Client2Name, &p.Client2Email, &p.Client2Phone, &p.Client2Active,
		&p.Client3Name, &p.Client3Email, &p.Client3Phone, &p.Client3Active,
		&p.ContractStatus, &p.ContractSentDate, &p.ContractCompletedDate,
		&p.SupportingDocumentsStatus, &p.SupportingDocumentsSentDate, &p.SupportingDocumentsCompletedDate,
		&p.WaterDeclarationStatus, &p.WaterDeclarationSentDate, &p.WaterDeclarationCompletedDate,
		&p.SiteVisitStatus, &p.SiteVisitDate, &p.SiteVisitTime,
		&p.WindowOrderStatus, &p.WindowOrderDate, &p.WindowOrderDeliveryDate, &p.WindowOrderPDFPath,
		&p.DrawingsStatus, &p.DrawingsSentDate, &p.DrawingsCompletedDate,
		&p.ColoursStatus, &p.ColoursSentDate, &p.ColoursCompletedDate,
		&p.PlanningStatus, &p.PlanningSubmittedDate, &p.PlanningApprovedDate,
		&p.EnergyReportStatus, &p.EnergyReportSentDate, &p.EnergyReportCompletedDate,
		&p.FootingCertificationStatus, &p.FootingCertificationSentDate, &p.FootingCertificationCompletedDate,
		&p.BuildingPermitStatus, &p.BuildingPermitSubmittedDate, &p.BuildingPermitApprovedDate,
		&p.ProposalPDFPath, &p.Notes, &p.ProjectLog,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateProjectParams is the subset of fields the creation wizard collects.
// Everything else gets its per-domain default.
type CreateProjectParams struct {
	Name           string
	Suburb         sql.NullString
	Street         sql.NullString
	State          sql.NullString
	Stream         sql.NullString
	Classification sql.NullString
	ClientName     sql.NullString
	ClientEmail    sql.NullString
	ClientPhone    sql.NullString
	Notes          sql.NullString
}

// CreateProject inserts a new project with a server-computed year, the
// documented per-domain status defaults, the first client marked active and
// an initial log line. One insert, no follow-up writes.
func (q *Queries) CreateProject(ctx context.Context, p CreateProjectParams) (model.Project, error) {
	now := time.Now()
	year := int64(now.Year())
	logLine := fmt.Sprintf("%s - Project created", now.Format("02/01/2006"))

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO projects (
			name, suburb, street, state, stream, classification, year, status,
			client_name, client_email, client_phone,
			client1_name, client1_email, client1_phone, client1_active,
			contract_status, supporting_documents_status, water_declaration_status,
			site_visit_status, window_order_status, drawings_status, colours_status,
			planning_status, energy_report_status,
			footing_certification_status, building_permit_status,
			project_log, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Suburb, p.Street, p.State, p.Stream, p.Classification, year, model.DefaultStatus,
		p.ClientName, p.ClientEmail, p.ClientPhone,
		p.ClientName, p.ClientEmail, p.ClientPhone,
		model.DefaultContractStatus, model.DefaultSupportingDocumentsStatus, model.DefaultWaterDeclarationStatus,
		model.DefaultSiteVisitStatus, model.DefaultWindowOrderStatus, model.DefaultDrawingsStatus, model.DefaultColoursStatus,
		model.DefaultPlanningStatus, model.DefaultEnergyReportStatus,
		model.DefaultFootingCertificationStatus, model.DefaultBuildingPermitStatus,
		logLine, p.Notes, now, now,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("creating project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Project{}, fmt.Errorf("reading project id: %w", err)
	}

	return q.GetProject(ctx, id)
}

// GetProject returns one project by id, or sql.ErrNoRows.
func (q *Queries) GetProject(ctx context.Context, id int64) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	return scanProject(row)
}

// ListProjectsParams are the optional list filters. Query matches name,
// suburb, street and the client name columns.
type ListProjectsParams struct {
	Query  string
	State  string
	Stream string
	Status string
	Year   int64
}

// ListProjects returns projects matching the filters, most recently updated first.
func (q *Queries) ListProjects(ctx context.Context, f ListProjectsParams) ([]model.Project, error) {
	where := []string{"1=1"}
	args := []any{}

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		where = append(where, `(name LIKE ? OR suburb LIKE ? OR street LIKE ?
			OR client_name LIKE ? OR client1_name LIKE ? OR client2_name LIKE ? OR client3_name LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern, pattern, pattern, pattern)
	}
	if f.State != "" {
		where = append(where, "state = ?")
		args = append(args, f.State)
	}
	if f.Stream != "" {
		where = append(where, "stream = ?")
		args = append(args, f.Stream)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Year != 0 {
		where = append(where, "year = ?")
		args = append(args, f.Year)
	}

	query := "SELECT " + projectColumns + " FROM projects WHERE " +
		strings.Join(where, " AND ") + " ORDER BY updated_at DESC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProjectParams is a sparse patch: any subset of the mutable columns.
// A field left at its zero value (Present == false) leaves the column
// untouched; the json tags let handlers decode request bodies straight into
// this struct.
type UpdateProjectParams struct {
	Name           patch.String `json:"name"`
	Suburb         patch.String `json:"suburb"`
	Street         patch.String `json:"street"`
	State          patch.String `json:"state"`
	Stream         patch.String `json:"stream"`
	Classification patch.String `json:"classification"`
	Status         patch.String `json:"status"`

	ClientName  patch.String `json:"client_name"`
	ClientEmail patch.String `json:"client_email"`
	ClientPhone patch.String `json:"client_phone"`

	Client1Name   patch.String `json:"client1_name"`
	Client1Email  patch.String `json:"client1_email"`
	Client1Phone  patch.String `json:"client1_phone"`
	Client1Active patch.Flag   `json:"client1_active"`
	Client2Name   patch.String `json:"client2_name"`
	Client2Email  patch.String `json:"client2_email"`
	Client2Phone  patch.String `json:"client2_phone"`
	Client2Active patch.Flag   `json:"client2_active"`
	Client3Name   patch.String `json:"client3_name"`
	Client3Email  patch.String `json:"client3_email"`
	Client3Phone  patch.String `json:"client3_phone"`
	Client3Active patch.Flag   `json:"client3_active"`

	ContractStatus        patch.String `json:"contract_status"`
	ContractSentDate      patch.String `json:"contract_sent_date"`
	ContractCompletedDate patch.String `json:"contract_completed_date"`

	SupportingDocumentsStatus        patch.String `json:"supporting_documents_status"`
	SupportingDocumentsSentDate      patch.String `json:"supporting_documents_sent_date"`
	SupportingDocumentsCompletedDate patch.String `json:"supporting_documents_completed_date"`

	WaterDeclarationStatus        patch.String `json:"water_declaration_status"`
	WaterDeclarationSentDate      patch.String `json:"water_declaration_sent_date"`
	WaterDeclarationCompletedDate patch.String `json:"water_declaration_completed_date"`

	SiteVisitStatus patch.String `json:"site_visit_status"`
	SiteVisitDate   patch.String `json:"site_visit_date"`
	SiteVisitTime   patch.String `json:"site_visit_time"`

	WindowOrderStatus       patch.String `json:"window_order_status"`
	WindowOrderDate         patch.String `json:"window_order_date"`
	WindowOrderDeliveryDate patch.String `json:"window_order_delivery_date"`

	DrawingsStatus        patch.String `json:"drawings_status"`
	DrawingsSentDate      patch.String `json:"drawings_sent_date"`
	DrawingsCompletedDate patch.String `json:"drawings_completed_date"`

	ColoursStatus        patch.String `json:"colours_status"`
	ColoursSentDate      patch.String `json:"colours_sent_date"`
	ColoursCompletedDate patch.String `json:"colours_completed_date"`

	PlanningStatus        patch.String `json:"planning_status"`
	PlanningSubmittedDate patch.String `json:"planning_submitted_date"`
	PlanningApprovedDate  patch.String `json:"planning_approved_date"`

	EnergyReportStatus        patch.String `json:"energy_report_status"`
	EnergyReportSentDate      patch.String `json:"energy_report_sent_date"`
	EnergyReportCompletedDate patch.String `json:"energy_report_completed_date"`

	FootingCertificationStatus        patch.String `json:"footing_certification_status"`
	FootingCertificationSentDate      patch.String `json:"footing_certification_sent_date"`
	FootingCertificationCompletedDate patch.String `json:"footing_certification_completed_date"`

	BuildingPermitStatus        patch.String `json:"building_permit_status"`
	BuildingPermitSubmittedDate patch.String `json:"building_permit_submitted_date"`
	BuildingPermitApprovedDate  patch.String `json:"building_permit_approved_date"`

	Notes      patch.String `json:"notes"`
	ProjectLog patch.String `json:"project_log"`
}

// UpdateProject applies a sparse patch to one row in a single statement and
// returns the post-update row. Columns absent from the patch are untouched;
// updated_at is refreshed even when every field resolved to "unchanged".
// Returns sql.ErrNoRows if the id matches nothing.
func (q *Queries) UpdateProject(ctx context.Context, id int64, p UpdateProjectParams) (model.Project, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	str := func(col string, f patch.String) {
		if f.Present {
			sets = append(sets, col+" = ?")
			args = append(args, f.Value)
		}
	}
	flag := func(col string, f patch.Flag) {
		if f.Present {
			sets = append(sets, col+" = ?")
			args = append(args, f.Value)
		}
	}

	str("name", p.Name)
	str("suburb", p.Suburb)
	str("street", p.Street)
	str("state", p.State)
	str("stream", p.Stream)
	str("classification", p.Classification)
	str("status", p.Status)
	str("client_name", p.ClientName)
	str("client_email", p.ClientEmail)
	str("client_phone", p.ClientPhone)
	str("client1_name", p.Client1Name)
	str("client1_email", p.Client1Email)
	str("client1_phone", p.Client1Phone)
	flag("client1_active", p.Client1Active)
	str("client2_name", p.Client2Name)
	str("client2_email", p.Client2Email)
	str("client2_phone", p.Client2Phone)
	flag("client2_active", p.Client2Active)
	str("client3_name", p.Client3Name)
	str("client3_email", p.Client3Email)
	str("client3_phone", p.Client3Phone)
	flag("client3_active", p.Client3Active)
	str("contract_status", p.ContractStatus)
	str("contract_sent_date", p.ContractSentDate)
	str("contract_completed_date", p.ContractCompletedDate)
	str("supporting_documents_status", p.SupportingDocumentsStatus)
	str("supporting_documents_sent_date", p.SupportingDocumentsSentDate)
	str("supporting_documents_completed_date", p.SupportingDocumentsCompletedDate)
	str("water_declaration_status", p.WaterDeclarationStatus)
	str("water_declaration_sent_date", p.WaterDeclarationSentDate)
	str("water_declaration_completed_date", p.WaterDeclarationCompletedDate)
	str("site_visit_status", p.SiteVisitStatus)
	str("site_visit_date", p.SiteVisitDate)
	str("site_visit_time", p.SiteVisitTime)
	str("window_order_status", p.WindowOrderStatus)
	str("window_order_date", p.WindowOrderDate)
	str("window_order_delivery_date", p.WindowOrderDeliveryDate)
	str("drawings_status", p.DrawingsStatus)
	str("drawings_sent_date", p.DrawingsSentDate)
	str("drawings_completed_date", p.DrawingsCompletedDate)
	str("colours_status", p.ColoursStatus)
	str("colours_sent_date", p.ColoursSentDate)
	str("colours_completed_date", p.ColoursCompletedDate)
	str("planning_status", p.PlanningStatus)
	str("planning_submitted_date", p.PlanningSubmittedDate)
	str("planning_approved_date", p.PlanningApprovedDate)
	str("energy_report_status", p.EnergyReportStatus)
	str("energy_report_sent_date", p.EnergyReportSentDate)
	str("energy_report_completed_date", p.EnergyReportCompletedDate)
	str("footing_certification_status", p.FootingCertificationStatus)
	str("footing_certification_sent_date", p.FootingCertificationSentDate)
	str("footing_certification_completed_date", p.FootingCertificationCompletedDate)
	str("building_permit_status", p.BuildingPermitStatus)
	str("building_permit_submitted_date", p.BuildingPermitSubmittedDate)
	str("building_permit_approved_date", p.BuildingPermitApprovedDate)
	str("notes", p.Notes)
	str("project_log", p.ProjectLog)

	args = append(args, id)
	res, err := q.db.ExecContext(ctx,
		"UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return model.Project{}, fmt.Errorf("updating project %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return model.Project{}, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return model.Project{}, sql.ErrNoRows
	}

	return q.GetProject(ctx, id)
}

// DeleteProject removes a project. Returns sql.ErrNoRows if nothing matched.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AppendProjectLog appends one line to the project's free-text log.
func (q *Queries) AppendProjectLog(ctx context.Context, id int64, line string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE projects SET
			project_log = CASE
				WHEN project_log IS NULL OR project_log = '' THEN ?
				ELSE project_log || char(10) || ?
			END,
			updated_at = ?
		WHERE id = ?`,
		line, line, time.Now(), id)
	if err != nil {
		return fmt.Errorf("appending project log: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetProposalPDFPath records where a project's proposal PDF was stored.
func (q *Queries) SetProposalPDFPath(ctx context.Context, id int64, path string) error {
	return q.setPath(ctx, id, "proposal_pdf_path", path)
}

// SetWindowOrderPDFPath records where a project's window order PDF was stored.
func (q *Queries) SetWindowOrderPDFPath(ctx context.Context, id int64, path string) error {
	return q.setPath(ctx, id, "window_order_pdf_path", path)
}

func (q *Queries) setPath(ctx context.Context, id int64, col, path string) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE projects SET "+col+" = ?, updated_at = ? WHERE id = ?",
		path, time.Now(), id)
	if err != nil {
		return fmt.Errorf("setting %s: %w", col, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ScheduleSiteVisit sets the site visit date and period for one project.
// Used by the bulk scheduling endpoint; each call is an independent update.
func (q *Queries) ScheduleSiteVisit(ctx context.Context, id int64, date, period string) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE projects SET site_visit_date = ?, site_visit_time = ?, updated_at = ?
		WHERE id = ?`,
		sql.NullString{String: date, Valid: date != ""},
		sql.NullString{String: period, Valid: period != ""},
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("scheduling site visit for project %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
