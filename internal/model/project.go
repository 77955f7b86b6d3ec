// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application: Project, User, Position, EmailTemplate and Settings.
package model

import (
	"time"

	"github.com/olegiv/sitetrack/internal/util"
)

// Workflow status defaults applied once when a project is created. They are
// never re-applied afterwards; only an explicit patch changes a status field.
const (
	DefaultStatus                     = "Design Phase"
	DefaultContractStatus             = "Not Sent"
	DefaultSupportingDocumentsStatus  = "Not Sent"
	DefaultWaterDeclarationStatus     = "Not Sent"
	DefaultSiteVisitStatus            = "Not Scheduled"
	DefaultWindowOrderStatus          = "Not Ordered"
	DefaultDrawingsStatus             = "Not Started"
	DefaultColoursStatus              = "Not Sent"
	DefaultPlanningStatus             = "Not Required"
	DefaultEnergyReportStatus         = "Not Sent"
	DefaultFootingCertificationStatus = "Not Sent"
	DefaultBuildingPermitStatus       = "Not Submitted"
)

// Project is one tracked building job. The record is wide on purpose: each
// workflow area carries a free-text status string plus its sent/completed
// dates, stored as text the way the office enters them. All nullable columns
// use util null types so the struct serves directly as the API shape.
type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	Suburb         util.NullString `json:"suburb"`
	Street         util.NullString `json:"street"`
	State          util.NullString `json:"state"`
	Stream         util.NullString `json:"stream"`
	Classification util.NullString `json:"classification"`
	Year           int64           `json:"year"`
	Status         util.NullString `json:"status"`

	// Legacy single-client columns kept for older UI screens.
	ClientName  util.NullString `json:"client_name"`
	ClientEmail util.NullString `json:"client_email"`
	ClientPhone util.NullString `json:"client_phone"`

	Client1Name   util.NullString `json:"client1_name"`
	Client1Email  util.NullString `json:"client1_email"`
	Client1Phone  util.NullString `json:"client1_phone"`
	Client1Active util.NullBool   `json:"client1_active"`
	Client2Name   util.NullString `json:"client2_name"`
	Client2Email  util.NullString `json:"client2_email"`
	Client2Phone  util.NullString `json:"client2_phone"`
	Client2Active util.NullBool   `json:"client2_active"`
	Client3Name   util.NullString `json:"client3_name"`
	Client3Email  util.NullString `json:"client3_email"`
	Client3Phone  util.NullString `json:"client3_phone"`
	Client3Active util.NullBool   `json:"client3_active"`

	ContractStatus        util.NullString `json:"contract_status"`
	ContractSentDate      util.NullString `json:"contract_sent_date"`
	ContractCompletedDate util.NullString `json:"contract_completed_date"`

	SupportingDocumentsStatus        util.NullString `json:"supporting_documents_status"`
	SupportingDocumentsSentDate      util.NullString `json:"supporting_documents_sent_date"`
	SupportingDocumentsCompletedDate util.NullString `json:"supporting_documents_completed_date"`

	WaterDeclarationStatus        util.NullString `json:"water_declaration_status"`
	WaterDeclarationSentDate      util.NullString `json:"water_declaration_sent_date"`
	WaterDeclarationCompletedDate util.NullString `json:"water_declaration_completed_date"`

	SiteVisitStatus util.NullString `json:"site_visit_status"`
	SiteVisitDate   util.NullString `json:"site_visit_date"`
	SiteVisitTime   util.NullString `json:"site_visit_time"`

	WindowOrderStatus       util.NullString `json:"window_order_status"`
	WindowOrderDate         util.NullString `json:"window_order_date"`
	WindowOrderDeliveryDate util.NullString `json:"window_order_delivery_date"`
	WindowOrderPDFPath      util.NullString `json:"window_order_pdf_path"`

	DrawingsStatus        util.NullString `json:"drawings_status"`
	DrawingsSentDate      util.NullString `json:"drawings_sent_date"`
	DrawingsCompletedDate util.NullString `json:"drawings_completed_date"`

	ColoursStatus        util.NullString `json:"colours_status"`
	ColoursSentDate      util.NullString `json:"colours_sent_date"`
	ColoursCompletedDate util.NullString `json:"colours_completed_date"`

	PlanningStatus        util.NullString `json:"planning_status"`
	PlanningSubmittedDate util.NullString `json:"planning_submitted_date"`
	PlanningApprovedDate  util.NullString `json:"planning_approved_date"`

	EnergyReportStatus        util.NullString `json:"energy_report_status"`
	EnergyReportSentDate      util.NullString `json:"energy_report_sent_date"`
	EnergyReportCompletedDate util.NullString `json:"energy_report_completed_date"`

	FootingCertificationStatus        util.NullString `json:"footing_certification_status"`
	FootingCertificationSentDate      util.NullString `json:"footing_certification_sent_date"`
	FootingCertificationCompletedDate util.NullString `json:"footing_certification_completed_date"`

	BuildingPermitStatus        util.NullString `json:"building_permit_status"`
	BuildingPermitSubmittedDate util.NullString `json:"building_permit_submitted_date"`
	BuildingPermitApprovedDate  util.NullString `json:"building_permit_approved_date"`

	ProposalPDFPath util.NullString `json:"proposal_pdf_path"`
	Notes           util.NullString `json:"notes"`
	ProjectLog      util.NullString `json:"project_log"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
