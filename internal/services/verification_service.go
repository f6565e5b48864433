package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/clock"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// UploadLimits bounds photo uploads on CompleteDetails
type UploadLimits struct {
	MaxFileBytes  int64
	MaxTotalBytes int64
}

// VerificationDeps collects the collaborators of the lifecycle engine
type VerificationDeps struct {
	Requests  domain.VerificationRepository
	Users     domain.UserRepository
	Directory domain.DirectoryRepository
	Blobs     domain.BlobStore
	OTP       domain.OTPService
	Notifier  domain.NotificationService
	Audit     domain.AuditLogger
	Clock     clock.Clock
	Limits    UploadLimits
}

// VerificationServiceImpl implements domain.VerificationService
type VerificationServiceImpl struct {
	requests  domain.VerificationRepository
	users     domain.UserRepository
	directory domain.DirectoryRepository
	blobs     domain.BlobStore
	otp       domain.OTPService
	notifier  domain.NotificationService
	audit     domain.AuditLogger
	clock     clock.Clock
	limits    UploadLimits
}

// NewVerificationService creates the lifecycle engine
func NewVerificationService(d VerificationDeps) domain.VerificationService {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	return &VerificationServiceImpl{
		requests:  d.Requests,
		users:     d.Users,
		directory: d.Directory,
		blobs:     d.Blobs,
		otp:       d.OTP,
		notifier:  d.Notifier,
		audit:     d.Audit,
		clock:     d.Clock,
		limits:    d.Limits,
	}
}

// Register creates a pending request and sends the landlord an OTP
func (s *VerificationServiceImpl) Register(ctx context.Context, input domain.IntakeInput) (*domain.VerificationRequest, error) {
	station, err := s.directory.FindStation(ctx, input.StationID)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	otp, err := s.otp.Issue(ctx, id, input.LandlordPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to issue OTP: %w", err)
	}

	now := s.clock.Now().UTC()
	req := &domain.VerificationRequest{
		ID:            id,
		LandlordName:  input.LandlordName,
		LandlordPhone: input.LandlordPhone,
		Address:       input.Address,
		TenantDetails: input.TenantDetails,
		StationID:     station.ID,
		RegionID:      station.RegionID,
		Status:        domain.StatusPending,
		OTP:           *otp,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.TenantPhones == nil {
		req.TenantPhones = []string{}
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.RequestRegisteredEvent, 0).
		WithRequest(id.String()).
		WithPhone(input.LandlordPhone).
		WithMetadata("station_id", station.ID))

	return req, nil
}

// CompleteDetails attaches tenant details and photos while the request is
// pending. Uploaded categories replace any earlier photos of that category.
func (s *VerificationServiceImpl) CompleteDetails(ctx context.Context, id uuid.UUID, details domain.TenantDetails, uploads []domain.PhotoUpload) (*domain.VerificationRequest, error) {
	if err := s.checkUploads(uploads); err != nil {
		return nil, err
	}

	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.StatusPending {
		return nil, domain.TransitionError(req.Status)
	}

	merged := mergeDetails(req.TenantDetails, details)

	photos := make([]domain.Photo, 0, len(uploads))
	next := map[domain.PhotoCategory]int{}
	for _, u := range uploads {
		key, err := s.blobs.Put(ctx, u.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		photos = append(photos, domain.Photo{
			Category:    u.Category,
			Index:       next[u.Category],
			BlobKey:     key,
			ContentType: u.ContentType,
			Filename:    u.Filename,
			Size:        int64(len(u.Data)),
		})
		next[u.Category]++
	}

	if err := s.requests.UpdateDetails(ctx, id, merged, photos); err != nil {
		return nil, err
	}

	return s.requests.FindByID(ctx, id)
}

// checkUploads validates every upload before anything is stored. The
// content type is taken from the bytes, not the client header.
func (s *VerificationServiceImpl) checkUploads(uploads []domain.PhotoUpload) error {
	var total int64
	for i := range uploads {
		u := &uploads[i]
		if !u.Category.Valid() {
			return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, u.Category)
		}
		size := int64(len(u.Data))
		if size > s.limits.MaxFileBytes {
			return fmt.Errorf("%w: %s", domain.ErrFileTooLarge, u.Filename)
		}
		total += size
		if total > s.limits.MaxTotalBytes {
			return domain.ErrUploadTooLarge
		}
		mt := mimetype.Detect(u.Data)
		if !strings.HasPrefix(mt.String(), "image/") {
			return fmt.Errorf("%w: %s is %s", domain.ErrNotAnImage, u.Filename, mt.String())
		}
		u.ContentType = mt.String()
	}
	return nil
}

func mergeDetails(current, update domain.TenantDetails) domain.TenantDetails {
	out := current
	if update.TenantName != "" {
		out.TenantName = update.TenantName
	}
	if len(update.TenantPhones) > 0 {
		out.TenantPhones = update.TenantPhones
	}
	if update.FatherName != "" {
		out.FatherName = update.FatherName
	}
	if update.NationalID != "" {
		out.NationalID = update.NationalID
	}
	if update.PurposeOfStay != "" {
		out.PurposeOfStay = update.PurposeOfStay
	}
	if update.PreviousAddress != "" {
		out.PreviousAddress = update.PreviousAddress
	}
	if update.FamilyMembers != nil {
		out.FamilyMembers = update.FamilyMembers
	}
	return out
}

// tenantComplete reports whether staff have a tenant to work with
func tenantComplete(d domain.TenantDetails) bool {
	return strings.TrimSpace(d.TenantName) != "" && len(d.TenantPhones) > 0
}

// VerifyOTP checks the landlord's code and submits the request. A request
// without a tenant name and phone stays pending.
func (s *VerificationServiceImpl) VerifyOTP(ctx context.Context, id uuid.UUID, code string) (*domain.VerificationRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status == domain.StatusPending && !tenantComplete(req.TenantDetails) {
		return nil, domain.ErrTenantIncomplete
	}
	if err := s.otp.Verify(ctx, req, code); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	t := domain.Transition{
		RequestID:     id,
		From:          domain.StatusPending,
		To:            domain.StatusSubmitted,
		OTPVerifiedAt: &now,
		Entry: domain.HistoryEntry{
			Action: "otp_verified",
			Status: domain.StatusSubmitted,
			At:     now,
		},
	}
	if err := s.apply(ctx, 0, req, t); err != nil {
		return nil, err
	}
	req.OTP.VerifiedAt = &now
	req.OTP.Code = ""

	var recipients []uint
	leads, err := s.users.FindByStationRole(ctx, req.StationID, domain.RoleAdmin1)
	if err != nil {
		s.notifyFailed(ctx, req.ID, err)
	}
	supervisors, err := s.users.FindByRegionRole(ctx, req.RegionID, domain.RoleAdmin0)
	if err != nil {
		s.notifyFailed(ctx, req.ID, err)
	}
	recipients = appendIDs(recipients, leads...)
	recipients = appendIDs(recipients, supervisors...)
	s.notifier.Notify(ctx, dedupe(recipients, 0), "New Verification Request",
		fmt.Sprintf("Request from %s", req.LandlordName), req.ID)

	return req, nil
}

// ResendOTP replaces the code of a pending request once the resend
// window has elapsed.
func (s *VerificationServiceImpl) ResendOTP(ctx context.Context, id uuid.UUID) (*domain.OTP, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.StatusPending {
		return nil, domain.TransitionError(req.Status)
	}

	ok, wait, err := s.otp.CanResend(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: retry in %d seconds", domain.ErrOTPResendLimit, wait)
	}

	otp, err := s.otp.Issue(ctx, id, req.LandlordPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to issue OTP: %w", err)
	}
	if err := s.requests.UpdateOTP(ctx, id, *otp); err != nil {
		return nil, err
	}
	return otp, nil
}

// Get returns a request with history and photo references
func (s *VerificationServiceImpl) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.VerificationRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, req) {
		return nil, s.deny(ctx, actor, req, "view")
	}
	return req, nil
}

// Delegate assigns a submitted request to an officer of the same station
func (s *VerificationServiceImpl) Delegate(ctx context.Context, actor domain.Actor, id uuid.UUID, assigneeID uint, comment string) (*domain.VerificationRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lead, ok := actor.(domain.StationLead)
	if !ok || lead.StationID != req.StationID {
		return nil, s.deny(ctx, actor, req, "delegate")
	}
	if req.Status != domain.StatusSubmitted {
		return nil, domain.TransitionError(req.Status)
	}

	assignee, err := s.users.FindByID(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidAssignee
		}
		return nil, err
	}
	if assignee.Role != domain.RoleAdmin2 || assignee.StationID == nil || *assignee.StationID != req.StationID {
		return nil, domain.ErrInvalidAssignee
	}

	now := s.clock.Now().UTC()
	actorID := lead.ID
	t := domain.Transition{
		RequestID:  id,
		From:       domain.StatusSubmitted,
		To:         domain.StatusAssigned,
		AssignedTo: &assignee.ID,
		AssignedBy: &actorID,
		Entry: domain.HistoryEntry{
			ActorID: &actorID,
			Action:  "delegated to " + assignee.Name,
			Status:  domain.StatusAssigned,
			Comment: comment,
			At:      now,
		},
	}
	if err := s.apply(ctx, actorID, req, t); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, []uint{assignee.ID}, "New task assigned",
		fmt.Sprintf("Assigned request %s", req.ID), req.ID)

	return req, nil
}

// RecordFinding records an officer's finding or a final disposition
func (s *VerificationServiceImpl) RecordFinding(ctx context.Context, actor domain.Actor, id uuid.UUID, result domain.Status, comment string) (*domain.VerificationRequest, error) {
	if result != domain.StatusVerified && result != domain.StatusFlagged {
		return nil, domain.ErrInvalidResult
	}

	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	actorID := actor.UserID()
	now := s.clock.Now().UTC()

	if o, ok := actor.(domain.Officer); ok {
		if req.AssignedTo == nil || *req.AssignedTo != o.ID {
			return nil, s.deny(ctx, actor, req, "record finding")
		}
		if req.Status != domain.StatusAssigned {
			return nil, domain.TransitionError(req.Status)
		}
		t := domain.Transition{
			RequestID: id,
			From:      domain.StatusAssigned,
			To:        domain.StatusReturned,
			Entry: domain.HistoryEntry{
				ActorID: &actorID,
				Action:  "returned_for_final_review",
				Status:  domain.StatusReturned,
				Finding: result,
				Comment: comment,
				At:      now,
			},
		}
		if err := s.apply(ctx, actorID, req, t); err != nil {
			return nil, err
		}
		if req.AssignedBy != nil {
			s.notifier.Notify(ctx, []uint{*req.AssignedBy}, "Request ready for final verification",
				fmt.Sprintf("Request %s is ready for your final review", req.ID), req.ID)
		}
		return req, nil
	}

	if !canDispose(actor, req) {
		return nil, s.deny(ctx, actor, req, "record finding")
	}
	if req.Status != domain.StatusSubmitted && req.Status != domain.StatusReturned {
		return nil, domain.TransitionError(req.Status)
	}

	t := domain.Transition{
		RequestID:  id,
		From:       req.Status,
		To:         result,
		AssignedTo: req.AssignedTo,
		Entry: domain.HistoryEntry{
			ActorID: &actorID,
			Action:  string(result),
			Status:  result,
			Finding: result,
			Comment: comment,
			At:      now,
		},
	}
	if err := s.apply(ctx, actorID, req, t); err != nil {
		return nil, err
	}

	var recipients []uint
	if req.AssignedBy != nil {
		recipients = append(recipients, *req.AssignedBy)
	}
	supervisors, err := s.users.FindByRegionRole(ctx, req.RegionID, domain.RoleAdmin0)
	if err != nil {
		s.notifyFailed(ctx, req.ID, err)
	}
	recipients = appendIDs(recipients, supervisors...)
	s.notifier.Notify(ctx, dedupe(recipients, actorID), "Request updated",
		fmt.Sprintf("Request %s marked %s", req.ID, req.Status), req.ID)

	return req, nil
}

// List returns the requests visible to actor, newest first
func (s *VerificationServiceImpl) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	return s.requests.List(ctx, listScope(actor), filter)
}

// Stats returns per-day status counts for supervisors and super admins
func (s *VerificationServiceImpl) Stats(ctx context.Context, actor domain.Actor) ([]domain.DayStats, error) {
	scope, err := oversightScope(actor)
	if err != nil {
		return nil, err
	}
	return s.requests.DailyStats(ctx, scope)
}

// Logs returns finished requests, most recently updated first
func (s *VerificationServiceImpl) Logs(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.VerificationRequest, error) {
	scope, err := oversightScope(actor)
	if err != nil {
		return nil, err
	}
	return s.requests.ListTerminal(ctx, scope, filter)
}

// Photo returns one stored photo of a request
func (s *VerificationServiceImpl) Photo(ctx context.Context, actor domain.Actor, id uuid.UUID, category domain.PhotoCategory, index int) (*domain.Photo, []byte, error) {
	if !category.Valid() {
		return nil, nil, domain.ErrInvalidCategory
	}
	req, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	for i := range req.Photos {
		p := &req.Photos[i]
		if p.Category != category || p.Index != index {
			continue
		}
		data, err := s.blobs.Get(ctx, p.BlobKey)
		if err != nil {
			return nil, nil, err
		}
		return p, data, nil
	}
	return nil, nil, domain.ErrPhotoNotFound
}

// apply runs the transition and mirrors it onto req
func (s *VerificationServiceImpl) apply(ctx context.Context, actorID uint, req *domain.VerificationRequest, t domain.Transition) error {
	event := domain.NewAuditEvent(domain.RequestTransitionEvent, actorID).
		WithRequest(req.ID.String()).
		WithTransition(t.From, t.To)

	if err := s.requests.ApplyTransition(ctx, t); err != nil {
		s.audit.LogEvent(ctx, event.WithError(err))
		return err
	}
	s.audit.LogEvent(ctx, event)

	req.Status = t.To
	req.AssignedTo = t.AssignedTo
	if t.AssignedBy != nil {
		req.AssignedBy = t.AssignedBy
	}
	req.UpdatedAt = t.Entry.At
	req.History = append(req.History, t.Entry)
	return nil
}

func (s *VerificationServiceImpl) deny(ctx context.Context, actor domain.Actor, req *domain.VerificationRequest, action string) error {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.AccessDeniedEvent, actor.UserID()).
		WithRequest(req.ID.String()).
		WithMetadata("action", action).
		WithMetadata("role", string(actor.Role())).
		WithError(domain.ErrForbidden))
	return domain.ErrForbidden
}

func (s *VerificationServiceImpl) notifyFailed(ctx context.Context, id uuid.UUID, err error) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.NotificationFailure, 0).
		WithRequest(id.String()).
		WithError(err))
}

// listScope maps an actor to the requests it may list
func listScope(actor domain.Actor) domain.RequestScope {
	switch a := actor.(type) {
	case domain.RegionalSupervisor:
		return domain.RequestScope{RegionID: &a.RegionID}
	case domain.StationLead:
		return domain.RequestScope{StationID: &a.StationID, StationLead: &a.ID}
	case domain.Officer:
		return domain.RequestScope{AssignedTo: &a.ID}
	default:
		return domain.RequestScope{}
	}
}

func oversightScope(actor domain.Actor) (domain.RequestScope, error) {
	switch a := actor.(type) {
	case domain.SuperAdmin:
		return domain.RequestScope{}, nil
	case domain.RegionalSupervisor:
		return domain.RequestScope{RegionID: &a.RegionID}, nil
	default:
		return domain.RequestScope{}, domain.ErrForbidden
	}
}

func canView(actor domain.Actor, req *domain.VerificationRequest) bool {
	switch a := actor.(type) {
	case domain.SuperAdmin:
		return true
	case domain.RegionalSupervisor:
		return req.RegionID == a.RegionID
	case domain.StationLead:
		return req.StationID == a.StationID
	case domain.Officer:
		return req.AssignedTo != nil && *req.AssignedTo == a.ID
	}
	return false
}

func canDispose(actor domain.Actor, req *domain.VerificationRequest) bool {
	switch a := actor.(type) {
	case domain.SuperAdmin:
		return true
	case domain.RegionalSupervisor:
		return req.RegionID == a.RegionID
	case domain.StationLead:
		return req.StationID == a.StationID
	}
	return false
}

func appendIDs(ids []uint, users ...*domain.User) []uint {
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// dedupe drops repeats and the acting user, keeping order
func dedupe(ids []uint, exclude uint) []uint {
	seen := map[uint]bool{exclude: true}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
